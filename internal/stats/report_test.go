package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "typexam.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		rec := model.SessionRecord{
			User:      "ana",
			Exercise:  "final_exam",
			Mode:      "normal",
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
			Duration:  time.Minute,
			Result:    model.Result{WPM: float64(10 * (i + 1)), Accuracy: 90, TrueAccuracy: 90, Elapsed: 30 * time.Second},
			Passed:    i == 2,
		}
		if _, err := st.InsertResult(ctx, rec); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{User: "ana", Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Result.WPM != 20 || report.Results[1].Result.WPM != 30 {
		t.Fatalf("unexpected result order: %+v", report.Results)
	}
	if report.Summary.Exams != 2 || report.Summary.Passed != 1 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
}
