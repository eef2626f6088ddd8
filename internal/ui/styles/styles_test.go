package styles

import (
	"strings"
	"testing"

	"github.com/kyleking/local-mw/internal/models"
)

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		name   string
		status models.RepoStatus
		want   string
	}{
		{"not a repo", models.RepoStatus{Name: "Notes"}, "⚠️ "},
		{"check error", models.RepoStatus{IsRepo: true, Error: models.ErrTrackingUnknown}, "⚠️ "},
		{"pull failed", models.RepoStatus{IsRepo: true, HasUpdates: true, PullAttempted: true, PullError: "conflict"}, "❌"},
		{"pulled", models.RepoStatus{IsRepo: true, HasUpdates: true, PullAttempted: true, Pulled: true}, "✅"},
		{"behind", models.RepoStatus{IsRepo: true, HasUpdates: true, Behind: 3}, "🔴"},
		{"current", models.RepoStatus{IsRepo: true}, "✅"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusIcon(tt.status); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCategoryBadgeKeepsLabel(t *testing.T) {
	for _, c := range []models.Category{models.CategoryError, models.CategoryUpdates, models.CategoryUpToDate} {
		if got := CategoryBadge(c, "3 behind"); !strings.Contains(got, "3 behind") {
			t.Errorf("badge for %v lost its label: %q", c, got)
		}
	}
}
