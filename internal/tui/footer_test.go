package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typexam/internal/model"
	"github.com/verte-zerg/typexam/internal/stats"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		last:    &model.Result{WPM: 72.4, Accuracy: 97.8},
		allTime: stats.Summary{Count: 3, AvgWPM: 68.1, AvgAccuracy: 96.9},
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Last 72.4 WPM", "97.8%", "All-time 68.1 WPM", "96.9%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterEmpty(t *testing.T) {
	m := &Model{}
	if out := m.renderFooter(); out != "" {
		t.Fatalf("expected empty footer, got %q", out)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(90500 * time.Millisecond); got != "1:31" {
		t.Fatalf("unexpected duration: %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
