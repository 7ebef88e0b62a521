// Package exercise defines the catalogue of typing exercises.
package exercise

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/generator"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/scoring"
)

// FinalExamKey is the key of the graded exam.
const FinalExamKey = "final_exam"

const (
	wordsToGenerate = 200
	examNumberRatio = 0.1
)

// ErrUnknown is returned by Lookup for a key not in the catalogue.
var ErrUnknown = errors.New("unknown exercise")

// Exercise describes how to build and run one typing test.
type Exercise struct {
	Key         string
	Title       string
	Description string
	Category    string
	Duration    time.Duration
	Mode        engine.Mode
	// Threshold is the pass mark, nil when the exercise is ungraded.
	Threshold *scoring.Threshold

	build func(g *generator.Generator, common []string) []string
}

// Words builds a fresh target word sequence. common is the word list used by
// random-word exercises; nil selects the built-in list.
func (e Exercise) Words(g *generator.Generator, common []string) []string {
	if len(common) == 0 {
		common = commonWords
	}
	return e.build(g, common)
}

// Graded reports whether the exercise has a pass mark.
func (e Exercise) Graded() bool {
	return e.Threshold != nil
}

// Passed reports whether r meets the pass mark. Ungraded exercises never pass.
func (e Exercise) Passed(r model.Result) bool {
	return e.Threshold != nil && e.Threshold.Passed(r)
}

// UsesWordList reports whether the exercise draws from the common word list.
func (e Exercise) UsesWordList() bool {
	return e.Key == "basic_common_words" || strings.HasPrefix(e.Key, "drill_timed") || e.Key == FinalExamKey
}

func phrase(phrases []string) func(*generator.Generator, []string) []string {
	return func(g *generator.Generator, _ []string) []string {
		return g.Phrase(phrases)
	}
}

func fixed(text string) func(*generator.Generator, []string) []string {
	return func(_ *generator.Generator, _ []string) []string {
		return strings.Fields(text)
	}
}

func randomWords(count int) func(*generator.Generator, []string) []string {
	return func(g *generator.Generator, common []string) []string {
		return g.Words(common, count)
	}
}

func examWords(g *generator.Generator, common []string) []string {
	return g.InjectNumbers(g.Words(common, wordsToGenerate), examNumberRatio, examNumbers)
}

var catalogue = []Exercise{
	{
		Key: "warmup_home_row", Title: "Home Row Practice", Category: "Warm-up & Introductory",
		Description: "Simple words using only home row keys (ASDF JKL;).",
		Duration:    60 * time.Second, build: phrase(homeRowPhrases),
	},
	{
		Key: "warmup_alphabet", Title: "Alphabet Practice", Category: "Warm-up & Introductory",
		Description: "Builds familiarity with all letter positions.",
		Duration:    90 * time.Second, build: phrase(alphabetPhrases),
	},
	{
		Key: "basic_simple_sentences", Title: "Simple Sentences", Category: "Basic Typing",
		Description: "Short sentences with basic punctuation to build speed.",
		Duration:    60 * time.Second, build: phrase(simpleSentences),
	},
	{
		Key: "basic_common_words", Title: "Common Words", Category: "Basic Typing",
		Description: "Practice the most frequently used English words.",
		Duration:    60 * time.Second, build: randomWords(wordsToGenerate),
	},
	{
		Key: "intermediate_complex_sentences", Title: "Complex Sentences", Category: "Intermediate Typing",
		Description: "Longer sentences with mixed punctuation to improve fluidity.",
		Duration:    90 * time.Second, build: phrase(complexSentences),
	},
	{
		Key: "intermediate_paragraph", Title: "Paragraph Practice", Category: "Intermediate Typing",
		Description: "Improve typing endurance with a full paragraph.",
		Duration:    120 * time.Second, build: fixed(paragraph),
	},
	{
		Key: "advanced_technical_vocab", Title: "Technical Vocabulary", Category: "Advanced Typing",
		Description: "Practice with terms from coding and other industries.",
		Duration:    90 * time.Second, build: phrase(technicalPhrases),
	},
	{
		Key: "advanced_special_chars", Title: "Special Characters", Category: "Advanced Typing",
		Description: "Sentences including characters like @, #, $, %.",
		Duration:    90 * time.Second, build: phrase(specialCharPhrases),
	},
	{
		Key: "drill_timed_1_min", Title: "1-Minute Timed Test", Category: "Speed & Accuracy Drills",
		Description: "Assess your typing speed under timed conditions.",
		Duration:    60 * time.Second, build: randomWords(wordsToGenerate),
	},
	{
		Key: "drill_timed_3_min", Title: "3-Minute Timed Test", Category: "Speed & Accuracy Drills",
		Description: "A longer test to challenge your speed and consistency.",
		Duration:    180 * time.Second, build: randomWords(wordsToGenerate * 3),
	},
	{
		Key: "drill_accuracy_challenge", Title: "Accuracy Challenge", Category: "Speed & Accuracy Drills",
		Description: "Type a passage perfectly. The test ends on the first error.",
		// Generous budget; the first error ends it.
		Duration: 300 * time.Second, Mode: engine.ModeAccuracyChallenge, build: fixed(challengePassage),
	},
	{
		Key: FinalExamKey, Title: "Final Exam", Category: "Final Exam",
		Description: "Test your typing speed and accuracy (1 min test).",
		Duration:    60 * time.Second, Threshold: &scoring.FinalExamThreshold, build: examWords,
	},
}

// All returns the catalogue in display order.
func All() []Exercise {
	return append([]Exercise(nil), catalogue...)
}

// Lookup finds an exercise by key.
func Lookup(key string) (Exercise, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	for _, e := range catalogue {
		if e.Key == key {
			return e, nil
		}
	}
	return Exercise{}, fmt.Errorf("%w: %q", ErrUnknown, key)
}

// Keys returns every exercise key in display order.
func Keys() []string {
	keys := make([]string, len(catalogue))
	for i, e := range catalogue {
		keys[i] = e.Key
	}
	return keys
}

// Categories returns category names in display order.
func Categories() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, e := range catalogue {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}

// CommonWords returns a copy of the built-in common word list.
func CommonWords() []string {
	return append([]string(nil), commonWords...)
}
