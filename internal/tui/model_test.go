package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typexam/internal/clock"
	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/store"
)

type fixture struct {
	m     *Model
	clk   *clock.Manual
	store *store.Store
}

func newFixture(t *testing.T, key string, words ...string) fixture {
	t.Helper()
	ex, err := exercise.Lookup(key)
	require.NoError(t, err)
	st, err := store.Open(filepath.Join(t.TempDir(), "typexam.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	clk := clock.NewManual(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	m := NewModel(Options{
		Exercise: ex,
		Mode:     ex.Mode,
		User:     "ana",
		Words:    func() []string { return append([]string(nil), words...) },
		Store:    st,
		Clock:    clk,
	})
	return fixture{m: m, clk: clk, store: st}
}

func (f fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f fixture) typeText(text string) {
	for _, r := range text {
		if r == ' ' {
			f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFirstKeyStartsTicking(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "ab")
	cmd := f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.NotNil(t, cmd)
	assert.Equal(t, engine.StatusRunning, f.m.engine.Status())

	cmd = f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.Nil(t, cmd)
}

func TestFinishSavesResult(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "ab", "cd")
	f.typeText("ab ")
	f.clk.Advance(2 * time.Second)
	f.typeText("cd ")

	require.NotNil(t, f.m.record)
	assert.Equal(t, engine.StatusFinished, f.m.engine.Status())
	assert.InDelta(t, 24.0, f.m.record.Result.WPM, 1e-9)
	assert.Equal(t, 100.0, f.m.record.Result.Accuracy)
	assert.NotEmpty(t, f.m.record.SessionID)
	assert.Nil(t, f.m.saveErr)

	results, err := f.store.ListResults(context.Background(), model.HistoryConfig{User: "ana"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "warmup_home_row", results[0].Exercise)
	assert.Equal(t, time.Minute, results[0].Duration)
	assert.Equal(t, 1, f.m.allTime.Count)
	assert.Contains(t, f.m.View(), "results")
}

func TestKeysIgnoredAfterFinish(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "a")
	f.typeText("a ")
	require.NotNil(t, f.m.record)
	f.typeText("zz")
	assert.Equal(t, "", f.m.engine.Buffer())
}

func TestTickExpiresSession(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "abc", "def")
	start := f.clk.Now()
	f.typeText("ab")

	cmd := f.send(tickMsg{attempt: f.m.attempt, at: start.Add(30 * time.Second)})
	assert.NotNil(t, cmd)
	assert.Nil(t, f.m.record)

	cmd = f.send(tickMsg{attempt: f.m.attempt, at: start.Add(61 * time.Second)})
	assert.Nil(t, cmd)
	require.NotNil(t, f.m.record)
	assert.Equal(t, time.Minute, f.m.record.Result.Elapsed)
	assert.Equal(t, 0, f.m.record.Result.CorrectWords)
}

func TestStaleTickIgnored(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "abc")
	start := f.clk.Now()
	f.typeText("a")
	stale := f.m.attempt
	f.send(tea.KeyMsg{Type: tea.KeyTab})

	f.send(tickMsg{attempt: stale, at: start.Add(2 * time.Minute)})
	assert.Equal(t, engine.StatusIdle, f.m.engine.Status())
	assert.Nil(t, f.m.record)
}

func TestFailedFinalExamOffersRetake(t *testing.T) {
	f := newFixture(t, exercise.FinalExamKey, "ab", "cd")
	f.typeText("ab ")
	f.clk.Advance(2 * time.Second)
	f.typeText("cd ")

	require.NotNil(t, f.m.record)
	assert.False(t, f.m.record.Passed)
	assert.True(t, f.m.keys.Retake.Enabled())
	assert.Contains(t, f.m.View(), "FAIL")

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, f.m.record)
	assert.Equal(t, engine.StatusIdle, f.m.engine.Status())
	assert.False(t, f.m.keys.Retake.Enabled())
}

func TestPassedFinalExam(t *testing.T) {
	f := newFixture(t, exercise.FinalExamKey, "ab", "cd")
	f.typeText("ab ")
	f.clk.Advance(time.Second)
	f.typeText("cd ")

	require.NotNil(t, f.m.record)
	assert.True(t, f.m.record.Passed)
	assert.False(t, f.m.keys.Retake.Enabled())
	assert.Contains(t, f.m.View(), "PASS")
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t, "warmup_home_row", "ab")
	cmd := f.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewShowsTargetText(t *testing.T) {
	f := newFixture(t, "drill_accuracy_challenge", "hello", "world")
	f.send(tea.WindowSizeMsg{Width: 100, Height: 20})
	view := f.m.View()
	assert.Contains(t, view, "accuracy challenge")
	assert.True(t, strings.Contains(view, "start typing"))
}
