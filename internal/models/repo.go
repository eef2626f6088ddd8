package models

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

const (
	ErrNotRepository   = "Not a git repository"
	ErrBranchUnknown   = "Could not determine branch"
	ErrFetchFailed     = "Failed to fetch updates"
	ErrTrackingUnknown = "No tracking branch or error checking"
)

// BehindUnknown marks a behind count that could not be determined.
const BehindUnknown = -1

// RepoStatus is the outcome of checking one repository. A resolver fills it
// in while it runs; once returned it is never modified.
type RepoStatus struct {
	Path   string
	Name   string
	Kind   RepoKind
	IsRepo bool
	Branch string
	Behind int
	Dirty  bool

	HasUpdates    bool
	PullAttempted bool
	Pulled        bool
	PullError     string

	Error    string
	Duration time.Duration
}

func NewRepoStatus(path string, kind RepoKind) RepoStatus {
	return RepoStatus{
		Path: path,
		Name: filepath.Base(path),
		Kind: kind,
	}
}

func (r RepoStatus) Category() Category {
	switch {
	case !r.IsRepo || r.Error != "":
		return CategoryError
	case r.HasUpdates:
		return CategoryUpdates
	default:
		return CategoryUpToDate
	}
}

// TrackingKnown reports whether the behind count came back usable.
func (r RepoStatus) TrackingKnown() bool {
	return r.Behind >= 0
}

func (r RepoStatus) PullFailed() bool {
	return r.PullAttempted && !r.Pulled
}

func (r RepoStatus) StatusText() string {
	switch {
	case !r.IsRepo:
		return "Not a git repo"
	case r.Error != "":
		return r.Error
	case r.Pulled && r.Dirty:
		return "Pulled (had uncommitted changes)"
	case r.Pulled:
		return "Pulled and up to date"
	case r.PullFailed():
		return "Pull failed: " + r.PullError
	case r.HasUpdates:
		return "Updates available"
	default:
		return "Up to date"
	}
}

// BehindText is the value shown in the Behind column.
func (r RepoStatus) BehindText() string {
	switch {
	case !r.IsRepo || r.Error != "":
		return "N/A"
	case r.Pulled:
		return "0"
	default:
		return fmt.Sprintf("%d", r.Behind)
	}
}

func (r RepoStatus) DirtyText() string {
	switch {
	case !r.IsRepo || r.Error != "":
		return "N/A"
	case r.Dirty:
		return "Yes"
	default:
		return "No"
	}
}

func (r RepoStatus) BranchText() string {
	if r.Branch == "" {
		return "N/A"
	}
	return r.Branch
}

// Target is one entry of a scan batch.
type Target struct {
	Path string
	Kind RepoKind
}

// RunConfig holds the policy switches for one run. It is built once at
// startup and passed by value.
type RunConfig struct {
	Verbose          bool
	ReportOnly       bool
	AutoConfirm      bool
	UpdateMode       bool
	MainlineBranches []string
	Workers          int
	CommandTimeout   time.Duration
}

var DefaultMainlineBranches = []string{"master", "main"}

func (c RunConfig) IsMainline(branch string) bool {
	branches := c.MainlineBranches
	if len(branches) == 0 {
		branches = DefaultMainlineBranches
	}
	return slices.Contains(branches, branch)
}
