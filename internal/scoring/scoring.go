// Package scoring contains the pure comparison and metric functions used to
// grade a typing session.
package scoring

import (
	"math"

	"github.com/verte-zerg/typexam/internal/model"
)

// CharsPerWord is the fixed word length used by the WPM convention.
const CharsPerWord = 5

// WordScore is the positional comparison of one typed word against its target.
type WordScore struct {
	Correct   int
	Incorrect int
	Extra     int
	Perfect   bool
}

// Tally accumulates character counts across words.
type Tally struct {
	Correct   int
	Incorrect int
	Extra     int
}

// Add folds a word score into the tally.
func (t *Tally) Add(s WordScore) {
	t.Correct += s.Correct
	t.Incorrect += s.Incorrect
	t.Extra += s.Extra
}

// Total returns the number of evaluated characters.
func (t Tally) Total() int {
	return t.Correct + t.Incorrect + t.Extra
}

// CompareWord compares typed against target rune by rune.
func CompareWord(target, typed string) WordScore {
	return CompareRunes([]rune(target), []rune(typed))
}

// CompareRunes is CompareWord for callers that already hold runes.
func CompareRunes(target, typed []rune) WordScore {
	var s WordScore
	for i, r := range typed {
		if i >= len(target) {
			s.Extra++
			continue
		}
		if r == target[i] {
			s.Correct++
		} else {
			s.Incorrect++
		}
	}
	s.Perfect = len(typed) == len(target) && s.Incorrect == 0
	return s
}

// WPM returns words per minute from correct characters. Elapsed time is
// floored at one second.
func WPM(correctChars int, elapsedSeconds float64) float64 {
	if correctChars <= 0 {
		return 0
	}
	seconds := math.Max(elapsedSeconds, 1)
	wpm := (float64(correctChars) / CharsPerWord) / (seconds / 60)
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) {
		return 0
	}
	return wpm
}

// WordAccuracy returns the percentage of processed words typed perfectly.
// With nothing processed it is 100 for an empty target sequence and 0 otherwise.
func WordAccuracy(correctWords, wordsProcessed int, targetEmpty bool) float64 {
	if wordsProcessed <= 0 {
		if targetEmpty {
			return 100
		}
		return 0
	}
	return clampPercent(float64(correctWords) / float64(wordsProcessed) * 100)
}

// CharAccuracy returns the percentage of evaluated characters that were
// correct. No evaluated characters counts as 100.
func CharAccuracy(correct, incorrect, extra int) float64 {
	total := correct + incorrect + extra
	if total <= 0 {
		return 100
	}
	return clampPercent(float64(correct) / float64(total) * 100)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Threshold is a pass mark for a finished session.
type Threshold struct {
	MinWPM          float64
	MinAccuracy     float64
	MinTrueAccuracy float64
}

// FinalExamThreshold is the pass mark applied to the final exam.
var FinalExamThreshold = Threshold{MinWPM: 25, MinAccuracy: 90, MinTrueAccuracy: 85}

// Passed reports whether every metric of r meets the threshold.
func (t Threshold) Passed(r model.Result) bool {
	return r.WPM >= t.MinWPM && r.Accuracy >= t.MinAccuracy && r.TrueAccuracy >= t.MinTrueAccuracy
}
