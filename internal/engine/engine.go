// Package engine implements the typing session state machine.
//
// An Engine is fed normalized key events and clock ticks from a single
// goroutine. It owns all session state, finishes on expiry, exhaustion of
// the target words or (in accuracy-challenge mode) the first error, and
// emits exactly one model.Result.
package engine

import (
	"time"
	"unicode"

	"github.com/verte-zerg/typexam/internal/clock"
	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/scoring"
)

// MaxExtraChars bounds how far the typed buffer may run past its target word.
const MaxExtraChars = 10

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. The default is the system clock.
func WithClock(src clock.Source) Option {
	return func(e *Engine) {
		e.clock = clock.New(src)
	}
}

// WithCompletion registers the callback that receives the result.
func WithCompletion(fn func(model.Result)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// Engine is a single typing session.
type Engine struct {
	targets    [][]rune
	duration   time.Duration
	mode       Mode
	clock      *clock.Clock
	onComplete func(model.Result)

	status  Status
	index   int
	buffer  []rune
	elapsed time.Duration

	tally          scoring.Tally
	correctWords   int
	wordsProcessed int
	frozen         [][]CharAnnotation

	result *model.Result
}

// New returns an idle session over words. A non-positive duration yields an
// inert engine that ignores every event.
func New(words []string, duration time.Duration, mode Mode, opts ...Option) *Engine {
	targets := make([][]rune, len(words))
	for i, w := range words {
		targets[i] = []rune(w)
	}
	e := &Engine{
		targets:  targets,
		duration: duration,
		mode:     mode,
		frozen:   make([][]CharAnnotation, 0, len(words)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.New(nil)
	}
	return e
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Mode returns the session mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Duration returns the configured time budget.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// Elapsed returns the last sampled elapsed time.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// StartedAt returns the time of the first qualifying keystroke, or zero.
func (e *Engine) StartedAt() time.Time {
	return e.clock.StartedAt()
}

// WordIndex returns the index of the active word.
func (e *Engine) WordIndex() int {
	return e.index
}

// Buffer returns the typed text of the active word.
func (e *Engine) Buffer() string {
	return string(e.buffer)
}

// Words returns a copy of the target words.
func (e *Engine) Words() []string {
	out := make([]string, len(e.targets))
	for i, t := range e.targets {
		out[i] = string(t)
	}
	return out
}

// Result returns the result once the session has finished.
func (e *Engine) Result() (model.Result, bool) {
	if e.result == nil {
		return model.Result{}, false
	}
	return *e.result, true
}

// ProcessKey applies one normalized event. A running session is sampled
// first, so a key arriving after the budget ends it instead of scoring.
func (e *Engine) ProcessKey(ev Event) Diff {
	var d Diff
	if e.status == StatusFinished || e.duration <= 0 {
		return d
	}
	if e.status == StatusRunning {
		if d = e.Tick(e.clock.Now()); d.Finished {
			return d
		}
	}
	if ev.Kind == EventChar && unicode.IsSpace(ev.Char) {
		ev = Commit()
	}
	if ev.Kind == EventChar && !unicode.IsPrint(ev.Char) {
		return d
	}
	if e.status == StatusIdle {
		if ev.Kind != EventChar {
			return d
		}
		e.clock.Start()
		e.status = StatusRunning
		d.Started = true
	}

	switch ev.Kind {
	case EventBackspace:
		e.backspace(&d)
	case EventCommit:
		e.commit(&d)
	case EventChar:
		e.typeChar(ev.Char, &d)
	}
	return d
}

// Tick samples the clock at now and finishes the session on expiry.
func (e *Engine) Tick(now time.Time) Diff {
	var d Diff
	if e.status != StatusRunning {
		return d
	}
	if el := e.clock.Elapsed(now); el > e.elapsed {
		e.elapsed = el
		d.TimeChanged = true
	}
	if e.elapsed >= e.duration {
		e.finish(now, &d)
	}
	return d
}

// Sample is Tick at the clock source's current time.
func (e *Engine) Sample() Diff {
	return e.Tick(e.clock.Now())
}

func (e *Engine) backspace(d *Diff) {
	if e.mode == ModeAccuracyChallenge || len(e.buffer) == 0 {
		return
	}
	e.buffer = e.buffer[:len(e.buffer)-1]
	d.BufferChanged = true
}

func (e *Engine) typeChar(r rune, d *Diff) {
	if e.index >= len(e.targets) {
		return
	}
	target := e.targets[e.index]
	if e.mode == ModeAccuracyChallenge {
		pos := len(e.buffer)
		if pos >= len(target) || target[pos] != r {
			e.buffer = append(e.buffer, r)
			d.BufferChanged = true
			e.finish(e.clock.Now(), d)
			return
		}
	}
	if len(e.buffer) >= len(target)+MaxExtraChars {
		return
	}
	e.buffer = append(e.buffer, r)
	d.BufferChanged = true
}

func (e *Engine) commit(d *Diff) {
	if e.index >= len(e.targets) {
		return
	}
	target := e.targets[e.index]
	if len(e.buffer) == 0 && len(target) > 0 {
		return
	}
	score := scoring.CompareRunes(target, e.buffer)
	if e.mode == ModeAccuracyChallenge && !score.Perfect {
		e.finish(e.clock.Now(), d)
		return
	}

	e.frozen = append(e.frozen, freeze(target, e.buffer))
	e.tally.Add(score)
	if countsAsWord(target, e.buffer) {
		e.wordsProcessed++
		if score.Perfect {
			e.correctWords++
		}
	}

	d.Committed = true
	d.CommittedWord = e.index
	d.BufferChanged = len(e.buffer) > 0
	e.index++
	e.buffer = nil
	if e.index >= len(e.targets) {
		e.finish(e.clock.Now(), d)
	}
}

// countsAsWord reports whether a word enters the word-accuracy denominator.
// An empty target committed with nothing typed is skipped on every path.
func countsAsWord(target, typed []rune) bool {
	return len(target) > 0 || len(typed) > 0
}

func (e *Engine) finish(now time.Time, d *Diff) {
	if e.status == StatusFinished {
		return
	}
	if e.status == StatusRunning {
		if el := e.clock.Elapsed(now); el > e.elapsed {
			e.elapsed = el
			d.TimeChanged = true
		}
	}
	e.status = StatusFinished
	d.Finished = true
	e.Finalize()
}

// Finalize ends the session if it is still open, computes the result and
// delivers it to the completion callback. Only the first call computes and
// delivers; every call returns the same record.
func (e *Engine) Finalize() model.Result {
	if e.result != nil {
		return *e.result
	}
	if e.status == StatusRunning {
		if el := e.clock.Sample(); el > e.elapsed {
			e.elapsed = el
		}
	}
	e.status = StatusFinished

	elapsed := e.elapsed
	if elapsed > e.duration {
		elapsed = e.duration
	}
	if elapsed < 0 {
		elapsed = 0
	}

	tally := e.tally
	correctWords := e.correctWords
	processed := e.wordsProcessed
	if e.index < len(e.targets) && len(e.buffer) > 0 {
		target := e.targets[e.index]
		score := scoring.CompareRunes(target, e.buffer)
		tally.Add(score)
		if score.Perfect {
			correctWords++
		}
		processed++
	}

	res := model.Result{
		WPM:          scoring.WPM(tally.Correct, elapsed.Seconds()),
		Accuracy:     scoring.WordAccuracy(correctWords, processed, len(e.targets) == 0),
		TrueAccuracy: scoring.CharAccuracy(tally.Correct, tally.Incorrect, tally.Extra),
		Elapsed:      elapsed,
		CorrectWords: correctWords,
	}
	e.result = &res
	if e.onComplete != nil {
		e.onComplete(res)
	}
	return res
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	words := make([][]CharAnnotation, len(e.targets))
	for i, target := range e.targets {
		switch {
		case i < len(e.frozen):
			words[i] = append([]CharAnnotation(nil), e.frozen[i]...)
		case i == e.index:
			words[i] = annotateActive(target, e.buffer)
		default:
			words[i] = annotateActive(target, nil)
		}
	}
	return Snapshot{
		Status:    e.status,
		Mode:      e.mode,
		WordIndex: e.index,
		Buffer:    string(e.buffer),
		Words:     words,
		Elapsed:   e.elapsed,
		Duration:  e.duration,
	}
}

func annotateActive(target, typed []rune) []CharAnnotation {
	n := len(target)
	if len(typed) > n {
		n = len(typed)
	}
	out := make([]CharAnnotation, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(typed):
			out = append(out, CharAnnotation{Char: target[i], State: CharPending})
		case i >= len(target):
			out = append(out, CharAnnotation{Char: typed[i], State: CharExtra})
		case typed[i] == target[i]:
			out = append(out, CharAnnotation{Char: target[i], State: CharCorrect})
		default:
			out = append(out, CharAnnotation{Char: target[i], State: CharIncorrect})
		}
	}
	return out
}

func freeze(target, typed []rune) []CharAnnotation {
	out := make([]CharAnnotation, 0, len(target)+len(typed))
	for i, r := range target {
		switch {
		case i >= len(typed):
			out = append(out, CharAnnotation{Char: r, State: CharMissed})
		case typed[i] == r:
			out = append(out, CharAnnotation{Char: r, State: CharCorrect})
		default:
			out = append(out, CharAnnotation{Char: r, State: CharIncorrect})
		}
	}
	for i := len(target); i < len(typed); i++ {
		out = append(out, CharAnnotation{Char: typed[i], State: CharExtra})
	}
	return out
}
