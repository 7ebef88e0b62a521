// Package stats summarizes stored exam results.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of stored results.
type Summary struct {
	Count           int
	AvgWPM          float64
	BestWPM         float64
	AvgAccuracy     float64
	AvgTrueAccuracy float64
	// Exams counts final exam attempts; Passed counts the passing ones.
	Exams  int
	Passed int
}

// PassRate returns the share of passed final exams in percent.
func (s Summary) PassRate() float64 {
	if s.Exams == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Exams) * 100
}

// Summarize computes averages over results.
func Summarize(results []model.StoredResult) Summary {
	var sum Summary
	if len(results) == 0 {
		return sum
	}
	for _, r := range results {
		sum.Count++
		sum.AvgWPM += r.Result.WPM
		sum.AvgAccuracy += r.Result.Accuracy
		sum.AvgTrueAccuracy += r.Result.TrueAccuracy
		if r.Result.WPM > sum.BestWPM {
			sum.BestWPM = r.Result.WPM
		}
		if r.Exercise == exercise.FinalExamKey {
			sum.Exams++
			if r.Passed {
				sum.Passed++
			}
		}
	}
	n := float64(sum.Count)
	sum.AvgWPM /= n
	sum.AvgAccuracy /= n
	sum.AvgTrueAccuracy /= n
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Resample fits values into width points by averaging buckets. Shorter
// series are returned unchanged.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
