package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typexam/internal/model"
)

func result(exercise string, wpm, acc, trueAcc float64, passed bool) model.StoredResult {
	return model.StoredResult{SessionRecord: model.SessionRecord{
		User:     "ana",
		Exercise: exercise,
		EndedAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Result:   model.Result{WPM: wpm, Accuracy: acc, TrueAccuracy: trueAcc, Elapsed: time.Minute, CorrectWords: 30},
		Passed:   passed,
	}}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]model.StoredResult{
		result("final_exam", 30, 90, 92, true),
		result("final_exam", 20, 80, 84, false),
		result("warmup_home_row", 10, 100, 100, false),
	})
	if sum.Count != 3 {
		t.Fatalf("expected 3 results, got %d", sum.Count)
	}
	if sum.AvgWPM != 20 || sum.BestWPM != 30 {
		t.Fatalf("unexpected wpm summary: %+v", sum)
	}
	if sum.AvgAccuracy != 90 {
		t.Fatalf("expected avg accuracy 90, got %f", sum.AvgAccuracy)
	}
	if sum.Exams != 2 || sum.Passed != 1 || sum.PassRate() != 50 {
		t.Fatalf("unexpected pass summary: %+v", sum)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Count != 0 || sum.PassRate() != 0 {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample: %v", got)
	}
	if short := Resample([]float64{1}, 5); len(short) != 1 {
		t.Fatalf("expected short series unchanged, got %v", short)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
}

func TestReportRender(t *testing.T) {
	results := []model.StoredResult{
		result("final_exam", 30, 90, 92, true),
		result("drill_timed_1_min", 35, 95, 96, false),
	}
	var buf bytes.Buffer
	report := Report{Results: results, Summary: Summarize(results)}
	if err := report.Render(&buf, 2, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Results: 2", "Final exams passed: 1/1", "drill_timed_1_min", "Learning Curves", "True Acc"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("missing %q in output:\n%s", needle, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No results found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
