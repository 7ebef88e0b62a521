// Package model defines shared data structures.
package model

import "time"

// Config defines exam settings resolved from flags, config file and env.
type Config struct {
	User     string
	Exercise string
	Lang     string
	Duration time.Duration
	Mode     string
	WordList string
	CapsPct  float64
	PunctPct float64
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	User        string
	Exercise    string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Result is the record emitted once when a typing session finishes.
type Result struct {
	WPM          float64
	Accuracy     float64
	TrueAccuracy float64
	Elapsed      time.Duration
	CorrectWords int
}

// ElapsedSeconds returns the elapsed time in seconds.
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// SessionRecord captures a completed session for persistence.
type SessionRecord struct {
	SessionID string
	User      string
	Exercise  string
	Mode      string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Result    Result
	Passed    bool
}

// StoredResult is a persisted session as read back from the store.
type StoredResult struct {
	ID int64
	SessionRecord
}
