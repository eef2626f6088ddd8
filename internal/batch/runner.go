package batch

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/kyleking/local-mw/internal/models"
	"golang.org/x/sync/errgroup"
)

// ResolveFunc checks one repository. It must not fail: every outcome is a
// status.
type ResolveFunc func(ctx context.Context, path string, kind models.RepoKind) models.RepoStatus

type Progress struct {
	Index     int
	Completed int
	Total     int
	Status    models.RepoStatus
}

type Scanner struct {
	resolve    ResolveFunc
	workers    int
	onProgress func(Progress)
}

// DefaultWorkers is the hardware parallelism, never less than one.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU())
}

// NewScanner returns a scanner running at most workers resolutions at a
// time. The count is capped at DefaultWorkers, and a non-positive count
// falls back to it.
func NewScanner(resolve ResolveFunc, workers int) *Scanner {
	if workers < 1 || workers > DefaultWorkers() {
		workers = DefaultWorkers()
	}
	return &Scanner{resolve: resolve, workers: workers}
}

func (s *Scanner) Workers() int {
	return s.workers
}

// OnProgress registers a callback invoked from worker goroutines after each
// resolution. It must be safe for concurrent use.
func (s *Scanner) OnProgress(fn func(Progress)) {
	s.onProgress = fn
}

// Scan resolves every target and returns the statuses in target order,
// whatever order they finished in.
func (s *Scanner) Scan(ctx context.Context, targets []models.Target) []models.RepoStatus {
	results := make([]models.RepoStatus, len(targets))
	total := len(targets)
	var completed atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, t := range targets {
		// Go blocks while the window is full.
		g.Go(func() error {
			results[i] = s.resolve(ctx, t.Path, t.Kind)

			n := completed.Add(1)
			if s.onProgress != nil {
				s.onProgress(Progress{Index: i, Completed: int(n), Total: total, Status: results[i]})
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
