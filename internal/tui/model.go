// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typexam/internal/clock"
	"github.com/verte-zerg/typexam/internal/display"
	"github.com/verte-zerg/typexam/internal/engine"
	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/generator"
	"github.com/verte-zerg/typexam/internal/input"
	"github.com/verte-zerg/typexam/internal/logging"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/stats"
	"github.com/verte-zerg/typexam/internal/store"
)

// Options configures a typing session.
type Options struct {
	Exercise exercise.Exercise
	Duration time.Duration
	Mode     engine.Mode
	User     string
	// Words builds a fresh target sequence for each attempt.
	Words func() []string
	// Store is optional; results are not persisted without it.
	Store *store.Store
	// Clock overrides the system clock.
	Clock clock.Source
}

type tickMsg struct {
	attempt int
	at      time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts    Options
	engine  *engine.Engine
	adapter *input.Adapter
	attempt int

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	record  *model.SessionRecord
	saveErr error

	last    *model.Result
	allTime stats.Summary
	history []model.StoredResult
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	if opts.Duration <= 0 {
		opts.Duration = opts.Exercise.Duration
	}
	if opts.Words == nil {
		ex, gen := opts.Exercise, generator.New()
		opts.Words = func() []string { return ex.Words(gen, nil) }
	}
	m := &Model{
		opts:     opts,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.loadFooterStats()
	m.resetSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = contentWidth(msg.Width)
		return m, nil
	case tickMsg:
		if msg.attempt != m.attempt {
			return m, nil
		}
		m.engine.Tick(msg.at)
		if m.engine.Status() == engine.StatusRunning {
			return m, m.tick()
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.resetSession()
		return nil
	case key.Matches(msg, m.keys.Retake):
		m.resetSession()
		return nil
	}
	if m.engine.Status() == engine.StatusFinished {
		return nil
	}
	var cmd tea.Cmd
	for _, ev := range m.adapter.FromTea(msg) {
		d := m.engine.ProcessKey(ev)
		if d.Started {
			logging.Logger.Debug("session started", "exercise", m.opts.Exercise.Key, "mode", m.engine.Mode().String())
			cmd = m.tick()
		}
	}
	return cmd
}

func (m *Model) tick() tea.Cmd {
	attempt := m.attempt
	return tea.Tick(clock.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg{attempt: attempt, at: t}
	})
}

func (m *Model) resetSession() {
	m.attempt++
	m.record = nil
	m.saveErr = nil
	m.adapter = input.NewAdapter()
	m.keys.Retake.SetEnabled(false)
	opts := []engine.Option{engine.WithCompletion(m.complete)}
	if m.opts.Clock != nil {
		opts = append(opts, engine.WithClock(m.opts.Clock))
	}
	m.engine = engine.New(m.opts.Words(), m.opts.Duration, m.opts.Mode, opts...)
}

// complete runs once per attempt when the engine finalizes.
func (m *Model) complete(r model.Result) {
	ex := m.opts.Exercise
	startedAt := m.engine.StartedAt()
	rec := model.SessionRecord{
		User:      m.opts.User,
		Exercise:  ex.Key,
		Mode:      m.opts.Mode.String(),
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(r.Elapsed),
		Duration:  m.opts.Duration,
		Result:    r,
		Passed:    ex.Passed(r),
	}
	m.record = &rec
	if ex.Graded() && !rec.Passed {
		m.keys.Retake.SetEnabled(true)
	}
	logging.Logger.Info("session finished",
		"exercise", ex.Key,
		"wpm", r.WPM,
		"accuracy", r.Accuracy,
		"true_accuracy", r.TrueAccuracy,
		"elapsed_ms", r.Elapsed.Milliseconds(),
		"passed", rec.Passed,
	)
	m.save(rec)
}

func (m *Model) save(rec model.SessionRecord) {
	res := rec.Result
	m.last = &res
	if m.opts.Store == nil {
		return
	}
	stored, err := m.opts.Store.InsertResult(context.Background(), rec)
	if err != nil {
		m.saveErr = err
		logging.Logger.Error("failed to save result", "error", err)
		return
	}
	m.record.SessionID = stored.SessionID
	m.history = append(m.history, stored)
	m.allTime = stats.Summarize(m.history)
}

func (m *Model) loadFooterStats() {
	if m.opts.Store == nil {
		return
	}
	results, err := m.opts.Store.ListResults(context.Background(), model.HistoryConfig{User: m.opts.User})
	if err != nil {
		logErrf("failed to load result history: %v\n", err)
		return
	}
	m.history = results
	m.allTime = stats.Summarize(results)
	if latest, err := m.opts.Store.LatestResult(context.Background(), m.opts.User); err == nil {
		res := latest.Result
		m.last = &res
	} else if !errors.Is(err, store.ErrNoResults) {
		logging.Logger.Warn("failed to load latest result", "error", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.record != nil {
		body = m.renderResult()
	} else {
		body = m.renderSession()
	}
	footer := m.renderFooter()
	helpLine := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{body, footer, helpLine}, "\n")
	}
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpRow := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
	return main + "\n" + footerLine + "\n" + helpRow
}

func (m *Model) renderSession() string {
	snap := m.engine.Snapshot()
	width := contentWidth(m.width)
	header := titleStyle.Render(m.opts.Exercise.Title)
	if snap.Mode == engine.ModeAccuracyChallenge {
		header += mutedStyle.Render("  accuracy challenge: the first error ends the test")
	}
	timer := mutedStyle.Render(fmt.Sprintf("%s left", formatDuration(snap.Remaining())))
	if snap.Status == engine.StatusIdle {
		timer = mutedStyle.Render("start typing to begin")
	}
	text := display.Render(snap, width)
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	return strings.Join([]string{header, "", text, "", m.progress.ViewAs(snap.Progress()), timer}, "\n")
}

func (m *Model) renderResult() string {
	r := m.record.Result
	lines := []string{
		titleStyle.Render(m.opts.Exercise.Title + " results"),
		"",
		fmt.Sprintf("WPM            %6.1f", r.WPM),
		fmt.Sprintf("Accuracy       %6.1f%%", r.Accuracy),
		fmt.Sprintf("True accuracy  %6.1f%%", r.TrueAccuracy),
		fmt.Sprintf("Correct words  %6d", r.CorrectWords),
		fmt.Sprintf("Time           %6s", formatDuration(r.Elapsed)),
	}
	if th := m.opts.Exercise.Threshold; th != nil {
		lines = append(lines, "")
		if m.record.Passed {
			lines = append(lines, passStyle.Render("PASS"))
		} else {
			lines = append(lines,
				failStyle.Render("FAIL"),
				mutedStyle.Render(fmt.Sprintf("needs %.0f WPM, %.0f%% accuracy, %.0f%% true accuracy", th.MinWPM, th.MinAccuracy, th.MinTrueAccuracy)),
			)
		}
	}
	if m.saveErr != nil {
		lines = append(lines, "", failStyle.Render("result not saved: "+m.saveErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.engine != nil && m.engine.Status() == engine.StatusRunning {
		segments = append(segments, fmt.Sprintf("Word %d/%d", m.engine.WordIndex()+1, len(m.engine.Words())))
	}
	if m.last != nil {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.last.WPM, m.last.Accuracy))
	}
	if m.allTime.Count > 0 {
		segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allTime.AvgWPM, m.allTime.AvgAccuracy))
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func contentWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := int(float64(width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
