// Package input normalizes raw key events into engine events.
package input

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typexam/internal/engine"
)

// Raw key names understood by Adapter.Key besides single characters.
const (
	KeySpace     = "Space"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyShift     = "Shift"
	KeyCapsLock  = "CapsLock"
)

// Adapter turns key identifiers into engine events and applies the shift
// state before characters reach the engine.
type Adapter struct {
	shift    bool
	capsLock bool
}

// NewAdapter returns an Adapter with shift and caps lock released.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// shiftPending reports whether the next letter will be upper-cased by shift.
func (a *Adapter) shiftPending() bool {
	return a.shift
}

func (a *Adapter) capsLatched() bool {
	return a.capsLock
}

// ToggleShift arms or disarms the one-shot shift.
func (a *Adapter) ToggleShift() {
	a.shift = !a.shift
}

// ToggleCapsLock latches or releases caps lock.
func (a *Adapter) ToggleCapsLock() {
	a.capsLock = !a.capsLock
}

// Key normalizes a raw key name such as "a", " ", "Space", "Backspace" or
// "ArrowLeft". Modifier and navigation keys are dropped (ok is false).
func (a *Adapter) Key(name string) (engine.Event, bool) {
	switch strings.ToLower(name) {
	case " ", "space", "spacebar":
		return engine.Commit(), true
	case "backspace", "delete", "del":
		return engine.Backspace(), true
	case "shift":
		a.ToggleShift()
		return engine.Event{}, false
	case "capslock":
		a.ToggleCapsLock()
		return engine.Event{}, false
	}
	if utf8.RuneCountInString(name) != 1 {
		return engine.Event{}, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return a.char(r)
}

// FromTea normalizes a Bubble Tea key message. A single message can carry
// several runes, so it returns a slice. Bracketed pastes are dropped: only
// typed keys are scored.
func (a *Adapter) FromTea(msg tea.KeyMsg) []engine.Event {
	if msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeySpace:
		return []engine.Event{engine.Commit()}
	case tea.KeyBackspace, tea.KeyDelete:
		return []engine.Event{engine.Backspace()}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]engine.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == ' ' {
				events = append(events, engine.Commit())
				continue
			}
			if ev, ok := a.char(r); ok {
				events = append(events, ev)
			}
		}
		return events
	default:
		return nil
	}
}

func (a *Adapter) char(r rune) (engine.Event, bool) {
	if unicode.IsSpace(r) {
		return engine.Commit(), true
	}
	if !unicode.IsPrint(r) {
		return engine.Event{}, false
	}
	if unicode.IsLetter(r) {
		if a.shift != a.capsLock {
			r = unicode.ToUpper(r)
		}
		a.shift = false
	}
	return engine.Char(r), true
}
