package exercise

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/generator"
	"github.com/verte-zerg/typexam/internal/model"
)

func TestCatalogueKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range All() {
		require.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
		assert.Positive(t, e.Duration, e.Key)
		assert.NotEmpty(t, e.Title, e.Key)
	}
	assert.Len(t, Keys(), 12)
}

func TestLookup(t *testing.T) {
	e, err := Lookup(" Final_Exam ")
	require.NoError(t, err)
	assert.Equal(t, FinalExamKey, e.Key)
	assert.True(t, e.Graded())
	assert.Equal(t, time.Minute, e.Duration)

	_, err = Lookup("nope")
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestPassed(t *testing.T) {
	exam, err := Lookup(FinalExamKey)
	require.NoError(t, err)
	good := model.Result{WPM: 30, Accuracy: 95, TrueAccuracy: 90}
	assert.True(t, exam.Passed(good))
	assert.False(t, exam.Passed(model.Result{WPM: 24, Accuracy: 95, TrueAccuracy: 90}))

	warmup, err := Lookup("warmup_home_row")
	require.NoError(t, err)
	assert.False(t, warmup.Passed(good))
}

func TestAccuracyChallengeMode(t *testing.T) {
	e, err := Lookup("drill_accuracy_challenge")
	require.NoError(t, err)
	assert.Equal(t, engine.ModeAccuracyChallenge, e.Mode)
	assert.False(t, e.Graded())
	assert.Equal(t, 5*time.Minute, e.Duration)
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "Warm-up & Introductory", cats[0])
	assert.Equal(t, "Final Exam", cats[len(cats)-1])
}

func TestWordsFromPhrase(t *testing.T) {
	e, err := Lookup("basic_simple_sentences")
	require.NoError(t, err)
	words := e.Words(generator.NewSeeded(1), nil)
	require.NotEmpty(t, words)
	assert.False(t, e.UsesWordList())
}

func TestWordsUseCustomList(t *testing.T) {
	e, err := Lookup("drill_timed_1_min")
	require.NoError(t, err)
	require.True(t, e.UsesWordList())
	words := e.Words(generator.NewSeeded(2), []string{"zed"})
	require.Len(t, words, 200)
	for _, w := range words {
		assert.Equal(t, "zed", w)
	}
}

func TestFinalExamInjectsNumbers(t *testing.T) {
	e, err := Lookup(FinalExamKey)
	require.NoError(t, err)
	words := e.Words(generator.NewSeeded(3), []string{"word"})
	require.Len(t, words, 200)
	numbers := 0
	for _, w := range words {
		if _, err := strconv.Atoi(w); err == nil {
			numbers++
		}
	}
	assert.Positive(t, numbers)
	assert.LessOrEqual(t, numbers, 20)
}

func TestCommonWordsIsCopy(t *testing.T) {
	words := CommonWords()
	words[0] = "mutated"
	assert.NotEqual(t, "mutated", CommonWords()[0])
}
