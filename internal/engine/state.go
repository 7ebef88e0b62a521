package engine

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a session.
type Status int

// Session states. StatusFinished is terminal.
const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Mode selects the session rules.
type Mode int

// Session modes.
const (
	ModeNormal Mode = iota
	// ModeAccuracyChallenge ends the session on the first error and forbids
	// backspace.
	ModeAccuracyChallenge
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAccuracyChallenge:
		return "accuracy-challenge"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return ModeNormal, nil
	case "accuracy-challenge", "accuracy", "challenge":
		return ModeAccuracyChallenge, nil
	default:
		return ModeNormal, fmt.Errorf("unknown mode %q (want normal or accuracy-challenge)", s)
	}
}

// CharState tags one rendered character.
type CharState int

// Character states. Pending only appears on the active and future words;
// missed only on committed words.
const (
	CharPending CharState = iota
	CharCorrect
	CharIncorrect
	CharExtra
	CharMissed
)

func (s CharState) String() string {
	switch s {
	case CharPending:
		return "pending"
	case CharCorrect:
		return "correct"
	case CharIncorrect:
		return "incorrect"
	case CharExtra:
		return "extra"
	case CharMissed:
		return "missed"
	default:
		return fmt.Sprintf("CharState(%d)", int(s))
	}
}

// CharAnnotation is the display state of one character. Char is the target
// character, or the typed one for extras.
type CharAnnotation struct {
	Char  rune
	State CharState
}

// Diff reports what a single ProcessKey or Tick call changed.
type Diff struct {
	Started       bool
	BufferChanged bool
	Committed     bool
	CommittedWord int
	TimeChanged   bool
	Finished      bool
}

// Changed reports whether anything observable changed.
func (d Diff) Changed() bool {
	return d.Started || d.BufferChanged || d.Committed || d.TimeChanged || d.Finished
}

// Snapshot is a read-only copy of the engine's observable state.
type Snapshot struct {
	Status    Status
	Mode      Mode
	WordIndex int
	Buffer    string
	Words     [][]CharAnnotation
	Elapsed   time.Duration
	Duration  time.Duration
}

// Remaining returns the time left before expiry.
func (s Snapshot) Remaining() time.Duration {
	if s.Elapsed >= s.Duration {
		return 0
	}
	return s.Duration - s.Elapsed
}

// Progress returns the fraction of the time budget used, in [0,1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := float64(s.Elapsed) / float64(s.Duration)
	if p > 1 {
		return 1
	}
	return p
}
