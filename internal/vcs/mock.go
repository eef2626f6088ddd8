package vcs

import (
	"context"
	"sync"
	"sync/atomic"
)

type Call struct {
	Op   string
	Path string
}

// MockProvider is a Provider whose behaviour is set per method. Unset
// methods report a clean "main" checkout that is up to date. Calls are
// recorded, and Peak tracks the highest number of calls in flight at once.
type MockProvider struct {
	CurrentBranchFn func(ctx context.Context, repoPath string) (string, error)
	FetchFn         func(ctx context.Context, repoPath string) error
	BehindCountFn   func(ctx context.Context, repoPath string, branch string) (int, error)
	IsDirtyFn       func(ctx context.Context, repoPath string) (bool, error)
	PullFn          func(ctx context.Context, repoPath string) error

	mu       sync.Mutex
	calls    []Call
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (m *MockProvider) enter(op, path string) func() {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Op: op, Path: path})
	m.mu.Unlock()

	n := m.inFlight.Add(1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return func() { m.inFlight.Add(-1) }
}

func (m *MockProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsFor returns the operations issued against one path, in order.
func (m *MockProvider) CallsFor(path string) []string {
	var ops []string
	for _, c := range m.Calls() {
		if c.Path == path {
			ops = append(ops, c.Op)
		}
	}
	return ops
}

func (m *MockProvider) Peak() int {
	return int(m.peak.Load())
}

func (m *MockProvider) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	defer m.enter("branch", repoPath)()
	if m.CurrentBranchFn != nil {
		return m.CurrentBranchFn(ctx, repoPath)
	}
	return "main", nil
}

func (m *MockProvider) Fetch(ctx context.Context, repoPath string) error {
	defer m.enter("fetch", repoPath)()
	if m.FetchFn != nil {
		return m.FetchFn(ctx, repoPath)
	}
	return nil
}

func (m *MockProvider) BehindCount(ctx context.Context, repoPath string, branch string) (int, error) {
	defer m.enter("behind", repoPath)()
	if m.BehindCountFn != nil {
		return m.BehindCountFn(ctx, repoPath, branch)
	}
	return 0, nil
}

func (m *MockProvider) IsDirty(ctx context.Context, repoPath string) (bool, error) {
	defer m.enter("dirty", repoPath)()
	if m.IsDirtyFn != nil {
		return m.IsDirtyFn(ctx, repoPath)
	}
	return false, nil
}

func (m *MockProvider) Pull(ctx context.Context, repoPath string) error {
	defer m.enter("pull", repoPath)()
	if m.PullFn != nil {
		return m.PullFn(ctx, repoPath)
	}
	return nil
}

var _ Provider = (*MockProvider)(nil)
