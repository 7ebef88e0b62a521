// Package main provides the CLI entrypoint for typexam.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typexam/internal/config"
	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/generator"
	"github.com/verte-zerg/typexam/internal/logging"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/stats"
	"github.com/verte-zerg/typexam/internal/store"
	"github.com/verte-zerg/typexam/internal/tui"
	"github.com/verte-zerg/typexam/internal/wordlist"
)

const (
	defaultLang        = "en"
	defaultCurveWindow = 5
)

const defaultPunctSet = ".,!?;:"

var (
	examUser     string
	examExercise string
	examDuration int
	examMode     string
	examWordList string
	examLang     string
	examCaps     float64
	examPunct    float64

	debug bool

	historyUser        string
	historyExercise    string
	historySince       string
	historyLast        int
	historyCurveWindow int

	closeLog = func() error { return nil }
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "typexam",
		Short:              "Timed typing exams in the terminal",
		SilenceUsage:       true,
		SilenceErrors:      false,
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: teardownLogging,
		RunE:               runExamCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs")
	addExamFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExercisesCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newScoreCmd())

	return rootCmd
}

func addExamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&examUser, "user", "", "user name stored with results")
	cmd.Flags().StringVarP(&examExercise, "exercise", "e", "", "exercise key (see `typexam exercises`)")
	cmd.Flags().IntVar(&examDuration, "duration", 0, "time budget in seconds (0: exercise default)")
	cmd.Flags().StringVar(&examMode, "mode", "", "normal or accuracy-challenge (default: exercise mode)")
	cmd.Flags().StringVar(&examWordList, "wordlist", "", "word list file replacing the common words")
	cmd.Flags().StringVar(&examLang, "lang", defaultLang, "word list language filter")
	cmd.Flags().Float64Var(&examCaps, "caps", 0, "probability of capitalized first letter (0-1)")
	cmd.Flags().Float64Var(&examPunct, "punct", 0, "punctuation probability per word (0-1)")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	closeFn, err := logging.Initialize(debug || env.Debug, env.LogFile, config.DefaultLogDir())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	closeLog = closeFn
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if err := closeLog(); err != nil {
		logErrf("failed to close log: %v\n", err)
	}
	return nil
}

// resolveExamConfig merges the config file and environment into the exam
// flags. Flags set on the command line win.
func resolveExamConfig(cmd *cobra.Command, fileCfg config.FileConfig, env config.Env) (model.Config, error) {
	exam := fileCfg.Exam
	applyStringConfig(cmd, "exercise", &examExercise, exam.Exercise)
	applyIntConfig(cmd, "duration", &examDuration, exam.Duration)
	applyStringConfig(cmd, "mode", &examMode, exam.Mode)
	applyStringConfig(cmd, "wordlist", &examWordList, exam.WordList)
	applyStringConfig(cmd, "lang", &examLang, exam.Lang)
	applyFloatConfig(cmd, "caps", &examCaps, exam.CapsPct)
	applyFloatConfig(cmd, "punct", &examPunct, exam.PunctPct)
	applyStringConfig(cmd, "user", &examUser, exam.User)
	if env.User != "" && !cmd.Flags().Changed("user") {
		examUser = env.User
	}

	cfg := model.Config{
		User:     examUser,
		Exercise: examExercise,
		Lang:     examLang,
		Duration: time.Duration(examDuration) * time.Second,
		Mode:     examMode,
		WordList: examWordList,
		CapsPct:  examCaps,
		PunctPct: examPunct,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runExamCmd(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveExamConfig(cmd, fileCfg, env)
	if err != nil {
		return err
	}

	ex, err := chooseExercise(cfg.Exercise)
	if err != nil {
		return err
	}
	mode, err := resolveMode(cfg.Mode, ex)
	if err != nil {
		return err
	}
	common, err := loadCommonWords(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(env.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	logging.Logger.Info("exam configured", "exercise", ex.Key, "mode", mode.String(), "user", cfg.User)
	m := tui.NewModel(tui.Options{
		Exercise: ex,
		Duration: cfg.Duration,
		Mode:     mode,
		User:     cfg.User,
		Words:    wordSource(ex, common, cfg, generator.New()),
		Store:    st,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func chooseExercise(key string) (exercise.Exercise, error) {
	if key != "" {
		return exercise.Lookup(key)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return exercise.Lookup(exercise.FinalExamKey)
	}
	ex, err := tui.PickExercise()
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("no exercise selected: %w", err)
	}
	return ex, nil
}

func resolveMode(value string, ex exercise.Exercise) (engine.Mode, error) {
	if value == "" {
		return ex.Mode, nil
	}
	mode, err := engine.ParseMode(value)
	if err != nil {
		return 0, fmt.Errorf("--mode: %w", err)
	}
	return mode, nil
}

// loadCommonWords returns the word list for random-word exercises, or nil to
// use the built-in list.
func loadCommonWords(cfg model.Config) ([]string, error) {
	path := resolveWordListPath(cfg)
	if path == "" {
		return nil, nil
	}
	words, err := wordlist.LoadWords(path, wordlist.FilterForLang(cfg.Lang))
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	return words, nil
}

func resolveWordListPath(cfg model.Config) string {
	if cfg.WordList != "" {
		return cfg.WordList
	}
	if cfg.Lang == "" {
		return ""
	}
	path := config.DefaultWordListPath(cfg.Lang)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func wordSource(ex exercise.Exercise, common []string, cfg model.Config, gen *generator.Generator) func() []string {
	punct := []rune(defaultPunctSet)
	return func() []string {
		words := ex.Words(gen, common)
		if ex.UsesWordList() && (cfg.CapsPct > 0 || cfg.PunctPct > 0) {
			words = gen.Decorate(words, cfg.CapsPct, cfg.PunctPct, punct)
		}
		return words
	}
}

func newExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List available exercises",
		Args:  cobra.NoArgs,
		RunE:  runExercisesCmd,
	}
}

func runExercisesCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, category := range exercise.Categories() {
		if _, err := fmt.Fprintln(out, category); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, ex := range exercise.All() {
			if ex.Category != category {
				continue
			}
			line := fmt.Sprintf("  %-32s %5s  %s", ex.Key, ex.Duration, ex.Description)
			if ex.Mode == engine.ModeAccuracyChallenge {
				line += " [accuracy-challenge]"
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyUser, "user", "", "user filter")
	cmd.Flags().StringVarP(&historyExercise, "exercise", "e", "", "exercise filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if cfg.User == "" {
		cfg.User = env.User
	}

	st, err := store.Open(env.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), cfg.CurveWindow, stats.TerminalWidth())
}

func historyConfig() (model.HistoryConfig, error) {
	if historyLast < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if historyCurveWindow < 1 {
		return model.HistoryConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	if historyExercise != "" {
		if _, err := exercise.Lookup(historyExercise); err != nil {
			return model.HistoryConfig{}, fmt.Errorf("--exercise: %w", err)
		}
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	return model.HistoryConfig{
		User:        historyUser,
		Exercise:    historyExercise,
		Since:       sinceTime,
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.Exercise != "" {
		if _, err := exercise.Lookup(cfg.Exercise); err != nil {
			if errors.Is(err, exercise.ErrUnknown) {
				return fmt.Errorf("--exercise: %w (run: typexam exercises)", err)
			}
			return err
		}
	}
	if cfg.Mode != "" {
		if _, err := engine.ParseMode(cfg.Mode); err != nil {
			return fmt.Errorf("--mode: %w", err)
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
