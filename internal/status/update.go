package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kyleking/local-mw/internal/models"
)

var ErrUpdateFailed = errors.New("update failed")

type UpdateResult int

const (
	UpdateAlreadyCurrent UpdateResult = iota
	UpdateDeclined
	UpdatePulled
	UpdatePullFailed
)

func (u UpdateResult) String() string {
	switch u {
	case UpdateAlreadyCurrent:
		return "already up to date"
	case UpdateDeclined:
		return "declined"
	case UpdatePulled:
		return "pulled"
	case UpdatePullFailed:
		return "pull failed"
	default:
		return "unknown"
	}
}

// CheckSingle resolves a repository the user named explicitly. The resolver
// must have been built with UpdateMode set so nothing is pulled here.
func (r *Resolver) CheckSingle(ctx context.Context, target models.Target) (models.RepoStatus, error) {
	s := r.Resolve(ctx, target.Path, target.Kind)
	switch {
	case !s.IsRepo:
		return s, fmt.Errorf("%w: %s", ErrUpdateFailed, models.ErrNotRepository)
	case s.Error != "":
		return s, fmt.Errorf("%w: %s", ErrUpdateFailed, s.Error)
	}
	return s, nil
}

// PullSingle applies the single-target rule to a checked status: any
// repository that is behind may be pulled, whatever its branch.
func (r *Resolver) PullSingle(ctx context.Context, s models.RepoStatus) (models.RepoStatus, UpdateResult, error) {
	if !SingleTargetEligible(s) {
		return s, UpdateAlreadyCurrent, nil
	}

	if !r.confirmAndPull(ctx, &s, singlePrompt(s)) {
		return s, UpdateDeclined, nil
	}
	if !s.Pulled {
		return s, UpdatePullFailed, fmt.Errorf("%w: %s", ErrUpdateFailed, s.PullError)
	}
	return s, UpdatePulled, nil
}

func singlePrompt(s models.RepoStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPull %d commit%s?", s.Behind, plural(s.Behind))
	if s.Dirty {
		b.WriteString("\n  ⚠️  WARNING: Repository has uncommitted changes!")
	}
	b.WriteString("\n  ")
	return b.String()
}
