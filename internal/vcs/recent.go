package vcs

import (
	"context"
	"time"

	"github.com/kyleking/local-mw/internal/cache"
)

// RecentFetch skips fetching a repository that was fetched successfully
// within the ttl. Every other operation goes straight to the wrapped
// provider.
type RecentFetch struct {
	Provider
	fetched *cache.TTLCache[time.Time]
}

func NewRecentFetch(p Provider, ttl time.Duration) *RecentFetch {
	return &RecentFetch{Provider: p, fetched: cache.New[time.Time](ttl)}
}

func (r *RecentFetch) Fetch(ctx context.Context, repoPath string) error {
	if _, ok := r.fetched.Get(repoPath); ok {
		return nil
	}
	if err := r.Provider.Fetch(ctx, repoPath); err != nil {
		return err
	}
	r.fetched.Set(repoPath, time.Now())
	return nil
}

// Reset makes the next Fetch of every repository hit the remote again.
func (r *RecentFetch) Reset() {
	r.fetched.Clear()
}

var _ Provider = (*RecentFetch)(nil)
