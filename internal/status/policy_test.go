package status

import (
	"testing"

	"github.com/kyleking/local-mw/internal/models"
)

func TestShouldAutoPull(t *testing.T) {
	behindMain := models.RepoStatus{IsRepo: true, Branch: "main", Behind: 3}

	tests := []struct {
		name     string
		status   models.RepoStatus
		cfg      models.RunConfig
		expected bool
	}{
		{name: "behind on main", status: behindMain, expected: true},
		{name: "behind on master", status: models.RepoStatus{IsRepo: true, Branch: "master", Behind: 1}, expected: true},
		{name: "dirty still eligible", status: models.RepoStatus{IsRepo: true, Branch: "main", Behind: 1, Dirty: true}, expected: true},
		{name: "up to date", status: models.RepoStatus{IsRepo: true, Branch: "main"}, expected: false},
		{name: "unknown tracking", status: models.RepoStatus{IsRepo: true, Branch: "main", Behind: -1}, expected: false},
		{name: "feature branch", status: models.RepoStatus{IsRepo: true, Branch: "feature-x", Behind: 2}, expected: false},
		{name: "report only", status: behindMain, cfg: models.RunConfig{ReportOnly: true}, expected: false},
		{name: "update mode", status: behindMain, cfg: models.RunConfig{UpdateMode: true}, expected: false},
		{name: "custom mainline", status: models.RepoStatus{IsRepo: true, Branch: "trunk", Behind: 2}, cfg: models.RunConfig{MainlineBranches: []string{"trunk"}}, expected: true},
		{name: "auto confirm does not widen", status: models.RepoStatus{IsRepo: true, Branch: "REL1_41", Behind: 2}, cfg: models.RunConfig{AutoConfirm: true}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAutoPull(tt.status, tt.cfg); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSingleTargetEligible(t *testing.T) {
	tests := []struct {
		name     string
		status   models.RepoStatus
		expected bool
	}{
		{name: "behind on feature branch", status: models.RepoStatus{IsRepo: true, Branch: "feature-x", Behind: 2}, expected: true},
		{name: "up to date", status: models.RepoStatus{IsRepo: true, Branch: "main"}, expected: false},
		{name: "unknown", status: models.RepoStatus{IsRepo: true, Behind: -1, Error: models.ErrTrackingUnknown}, expected: false},
		{name: "not a repo", status: models.RepoStatus{Behind: 2}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SingleTargetEligible(tt.status); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
