package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/vcs"
)

// Console is the shared channel for diagnostics and questions. Implementations
// must serialize calls across goroutines.
type Console interface {
	Debugf(format string, args ...any)
	Confirm(prompt string) bool
}

type Resolver struct {
	provider vcs.Provider
	console  Console
	cfg      models.RunConfig
	isRepo   func(path string) bool
	onPull   func(s models.RepoStatus)
}

func NewResolver(provider vcs.Provider, console Console, cfg models.RunConfig) *Resolver {
	return &Resolver{
		provider: provider,
		console:  console,
		cfg:      cfg,
		isRepo:   vcs.IsRepo,
	}
}

// OnPull registers a callback run after confirmation and just before a pull.
func (r *Resolver) OnPull(fn func(s models.RepoStatus)) {
	r.onPull = fn
}

// Resolve checks one repository and, when policy allows and the user agrees,
// pulls it. It never returns an error: every failure is recorded in the
// returned status.
func (r *Resolver) Resolve(ctx context.Context, path string, kind models.RepoKind) models.RepoStatus {
	start := time.Now()
	s := r.resolve(ctx, path, kind)
	s.Duration = time.Since(start)
	return s
}

func (r *Resolver) resolve(ctx context.Context, path string, kind models.RepoKind) models.RepoStatus {
	s := models.NewRepoStatus(path, kind)
	r.console.Debugf("\n[CHECKING] %s (%s)\n  Path: %s", s.Name, kind, path)

	s.IsRepo = r.isRepo(path)
	if !s.IsRepo {
		s.Error = models.ErrNotRepository
		r.console.Debugf("  [SKIP] %s", models.ErrNotRepository)
		return s
	}

	r.console.Debugf("  [STEP] Getting current branch...")
	branch, err := r.provider.CurrentBranch(ctx, path)
	s.Branch = strings.TrimSpace(branch)
	if err != nil || s.Branch == "" {
		s.Branch = ""
		s.Error = models.ErrBranchUnknown
		r.console.Debugf("  [ERROR] %s", models.ErrBranchUnknown)
		return s
	}
	r.console.Debugf("  [INFO] Current branch: %s", s.Branch)

	r.console.Debugf("  [STEP] Fetching updates from remote...")
	if err := r.provider.Fetch(ctx, path); err != nil {
		s.Error = models.ErrFetchFailed
		r.console.Debugf("  [ERROR] %s: %v", models.ErrFetchFailed, err)
		return s
	}

	r.console.Debugf("  [STEP] Checking commits behind remote...")
	behind, err := r.provider.BehindCount(ctx, path, s.Branch)
	if err != nil || behind < 0 {
		behind = models.BehindUnknown
	}
	s.Behind = behind

	r.console.Debugf("  [STEP] Checking for uncommitted changes...")
	dirty, err := r.provider.IsDirty(ctx, path)
	s.Dirty = err == nil && dirty
	if s.Dirty {
		r.console.Debugf("  [WARNING] Repository has uncommitted changes!")
	}

	switch {
	case s.Behind > 0:
		s.HasUpdates = true
		r.console.Debugf("  [RESULT] Behind by %d commit(s)", s.Behind)
		if ShouldAutoPull(s, r.cfg) {
			r.confirmAndPull(ctx, &s, r.batchPrompt(s))
		}
	case s.Behind < 0:
		s.Error = models.ErrTrackingUnknown
		r.console.Debugf("  [WARNING] %s", models.ErrTrackingUnknown)
	default:
		r.console.Debugf("  [RESULT] Up to date")
	}

	return s
}

func (r *Resolver) batchPrompt(s models.RepoStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPull updates for '%s' (%s, %d commit%s behind)", s.Name, s.Kind, s.Behind, plural(s.Behind))
	if s.Dirty {
		b.WriteString("\n  ⚠️  WARNING: Has uncommitted changes!")
	}
	b.WriteString("\n  ")
	return b.String()
}

// confirmAndPull asks unless auto-confirm is set, then pulls. It reports
// whether a pull was attempted.
func (r *Resolver) confirmAndPull(ctx context.Context, s *models.RepoStatus, prompt string) bool {
	if !r.cfg.AutoConfirm && !r.console.Confirm(prompt) {
		r.console.Debugf("  [INFO] User declined pull")
		return false
	}

	if r.onPull != nil {
		r.onPull(*s)
	}
	r.console.Debugf("  [STEP] Performing git pull...")
	s.PullAttempted = true
	if err := r.provider.Pull(ctx, s.Path); err != nil {
		s.PullError = pullErrorText(err)
		r.console.Debugf("  [ERROR] Git pull failed: %s", s.PullError)
		return true
	}
	s.Pulled = true
	r.console.Debugf("  [SUCCESS] Git pull completed")
	return true
}

// pullErrorText keeps the provider's own text when there is one.
func pullErrorText(err error) string {
	var f *vcs.Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return err.Error()
}
