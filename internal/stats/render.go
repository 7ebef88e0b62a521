package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/typexam/internal/exercise"
	"github.com/verte-zerg/typexam/internal/model"
)

const curveLabelWidth = 10

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, sum Summary) error {
	if sum.Count == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Results: %d", sum.Count),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AvgAccuracy),
		fmt.Sprintf("Avg True Accuracy: %.2f%%", sum.AvgTrueAccuracy),
	}
	if sum.Exams > 0 {
		lines = append(lines, fmt.Sprintf("Final exams passed: %d/%d (%.0f%%)", sum.Passed, sum.Exams, sum.PassRate()))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable prints one row per stored result.
func RenderTable(w io.Writer, results []model.StoredResult) error {
	if len(results) == 0 {
		return nil
	}
	headers := []string{"When", "User", "Exercise", "WPM", "Accuracy", "True Acc", "Words", "Time", "Pass"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		pass := "-"
		if r.Exercise == exercise.FinalExamKey {
			pass = "no"
			if r.Passed {
				pass = "yes"
			}
		}
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.User,
			r.Exercise,
			fmt.Sprintf("%.1f", r.Result.WPM),
			fmt.Sprintf("%.1f%%", r.Result.Accuracy),
			fmt.Sprintf("%.1f%%", r.Result.TrueAccuracy),
			strconv.Itoa(r.Result.CorrectWords),
			r.Result.Elapsed.Round(time.Second).String(),
			pass,
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints WPM and accuracy sparklines over a moving average,
// fitted to totalWidth columns. A non-positive totalWidth disables fitting.
func RenderCurves(w io.Writer, results []model.StoredResult, window, totalWidth int) error {
	if len(results) < 2 {
		return nil
	}
	wpms := make([]float64, len(results))
	accs := make([]float64, len(results))
	trues := make([]float64, len(results))
	for i, r := range results {
		wpms[i] = r.Result.WPM
		accs[i] = r.Result.Accuracy
		trues[i] = r.Result.TrueAccuracy
	}
	width := 0
	if totalWidth > 0 {
		width = totalWidth - curveLabelWidth
		if width < 1 {
			width = 1
		}
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	for _, s := range []struct {
		name   string
		values []float64
	}{
		{"WPM", wpms},
		{"Accuracy", accs},
		{"True Acc", trues},
	} {
		line := Sparkline(Resample(MovingAverage(s.values, window), width))
		if _, err := fmt.Fprintf(w, "%-*s%s\n", curveLabelWidth, s.name, line); err != nil {
			return err
		}
	}
	return nil
}
