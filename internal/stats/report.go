package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Results []model.StoredResult
	Summary Summary
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}
	return Report{Results: results, Summary: Summarize(results)}, nil
}

// Render writes the summary, table and curves for the report.
func (r Report) Render(w io.Writer, curveWindow, width int) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if err := RenderTable(w, r.Results); err != nil {
		return err
	}
	return RenderCurves(w, r.Results, curveWindow, width)
}
