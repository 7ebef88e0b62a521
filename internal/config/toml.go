// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Exam ExamConfig `toml:"exam"`
}

// ExamConfig maps exam-related settings. Nil fields were not set.
type ExamConfig struct {
	User     *string  `toml:"user"`
	Exercise *string  `toml:"exercise"`
	Duration *int     `toml:"duration"`
	Mode     *string  `toml:"mode"`
	WordList *string  `toml:"wordlist"`
	Lang     *string  `toml:"lang"`
	CapsPct  *float64 `toml:"caps"`
	PunctPct *float64 `toml:"punct"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `typexam config` when no file exists yet.
const Template = `# typexam configuration

[exam]
# user = "me"
# exercise = "final_exam"
# duration = 60          # seconds; 0 keeps the exercise default
# mode = "normal"        # or "accuracy-challenge"
# wordlist = ""          # one word per line, replaces the common words
# lang = "en"            # word list filter
# caps = 0.0             # chance to capitalize a generated word
# punct = 0.0            # chance to append punctuation
`
