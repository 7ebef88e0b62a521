package engine

import "fmt"

// EventKind identifies a normalized key event.
type EventKind int

// Event kinds.
const (
	EventChar EventKind = iota + 1
	EventBackspace
	EventCommit
)

func (k EventKind) String() string {
	switch k {
	case EventChar:
		return "char"
	case EventBackspace:
		return "backspace"
	case EventCommit:
		return "commit"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a normalized key event. Char is only meaningful for EventChar.
type Event struct {
	Kind EventKind
	Char rune
}

// Char returns a printable character event.
func Char(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

// Backspace returns a backspace event.
func Backspace() Event {
	return Event{Kind: EventBackspace}
}

// Commit returns a word commit (space) event.
func Commit() Event {
	return Event{Kind: EventCommit}
}

func (e Event) String() string {
	if e.Kind == EventChar {
		return fmt.Sprintf("char(%q)", e.Char)
	}
	return e.Kind.String()
}
