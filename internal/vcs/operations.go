package vcs

import (
	"context"
	"fmt"
)

// Provider is the set of version-control operations a status check needs.
// Failures are reported as *Failure values.
type Provider interface {
	CurrentBranch(ctx context.Context, repoPath string) (string, error)
	Fetch(ctx context.Context, repoPath string) error
	BehindCount(ctx context.Context, repoPath string, branch string) (int, error)
	IsDirty(ctx context.Context, repoPath string) (bool, error)
	Pull(ctx context.Context, repoPath string) error
}

type FailureKind int

const (
	// FailureExec means the command could not be started.
	FailureExec FailureKind = iota
	// FailureExit means the command ran and exited non-zero.
	FailureExit
	FailureTimeout
	// FailureParse means the command succeeded but its output was unusable.
	FailureParse
)

func (k FailureKind) String() string {
	switch k {
	case FailureExec:
		return "exec"
	case FailureExit:
		return "exit"
	case FailureTimeout:
		return "timeout"
	case FailureParse:
		return "parse"
	default:
		return "unknown"
	}
}

type Failure struct {
	Kind    FailureKind
	Op      string
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return fmt.Sprintf("%s: %s failure", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Message)
}

// Logger receives command traces when verbose output is on.
type Logger interface {
	Debugf(format string, args ...any)
}
