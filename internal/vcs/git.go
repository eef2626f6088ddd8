package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type GitOperations struct {
	// Timeout bounds each git invocation. Zero means no deadline.
	Timeout time.Duration
	Log     Logger
}

func NewGitOperations(timeout time.Duration, log Logger) *GitOperations {
	return &GitOperations{Timeout: timeout, Log: log}
}

func (g *GitOperations) debugf(format string, args ...any) {
	if g.Log != nil {
		g.Log.Debugf(format, args...)
	}
}

// runGit runs git in repoPath. When combined is set, stderr is folded into
// the returned output so that failure text can be shown to the user.
func (g *GitOperations) runGit(ctx context.Context, repoPath string, combined bool, args ...string) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	op := "git " + strings.Join(args, " ")
	g.debugf("  [CMD] %s (in %s)", op, repoPath)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var out []byte
	var err error
	if combined {
		out, err = cmd.CombinedOutput()
	} else {
		out, err = cmd.Output()
	}
	text := strings.TrimSpace(string(out))
	if text != "" {
		g.debugf("  [OUTPUT] %s", text)
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return text, &Failure{Kind: FailureTimeout, Op: op, Message: fmt.Sprintf("timed out after %s", g.Timeout)}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := text
			if !combined {
				msg = strings.TrimSpace(string(exitErr.Stderr))
			}
			if msg == "" {
				msg = exitErr.Error()
			}
			return text, &Failure{Kind: FailureExit, Op: op, Message: msg}
		}
		return text, &Failure{Kind: FailureExec, Op: op, Message: err.Error()}
	}
	return text, nil
}

func (g *GitOperations) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	return g.runGit(ctx, repoPath, false, "rev-parse", "--abbrev-ref", "HEAD")
}

func (g *GitOperations) Fetch(ctx context.Context, repoPath string) error {
	_, err := g.runGit(ctx, repoPath, true, "fetch")
	return err
}

// BehindCount counts commits on origin/<branch> that HEAD does not have.
func (g *GitOperations) BehindCount(ctx context.Context, repoPath string, branch string) (int, error) {
	out, err := g.runGit(ctx, repoPath, false, "rev-list", "--count", "HEAD..origin/"+branch)
	if err != nil {
		return -1, err
	}
	return parseCount(out)
}

func (g *GitOperations) IsDirty(ctx context.Context, repoPath string) (bool, error) {
	out, err := g.runGit(ctx, repoPath, false, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (g *GitOperations) Pull(ctx context.Context, repoPath string) error {
	_, err := g.runGit(ctx, repoPath, true, "pull")
	return err
}

func parseCount(out string) (int, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return -1, &Failure{Kind: FailureParse, Op: "git rev-list", Message: "empty output"}
	}
	n, err := strconv.Atoi(out)
	if err != nil || n < 0 {
		return -1, &Failure{Kind: FailureParse, Op: "git rev-list", Message: fmt.Sprintf("unexpected output %q", out)}
	}
	return n, nil
}

var _ Provider = (*GitOperations)(nil)
