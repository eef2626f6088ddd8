package status

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/vcs"
)

func TestCheckSingleDoesNotPull(t *testing.T) {
	p := &vcs.MockProvider{BehindCountFn: behindBy(4)}
	c := &fakeConsole{answer: true}
	r := newTestResolver(p, c, models.RunConfig{UpdateMode: true, AutoConfirm: true})

	s, err := r.CheckSingle(context.Background(), models.Target{Path: "/w", Kind: models.KindCore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PullAttempted || len(c.prompts) != 0 {
		t.Errorf("expected CheckSingle to leave pulling to PullSingle, got %+v", s)
	}
}

func TestCheckSingleErrors(t *testing.T) {
	r := NewResolver(&vcs.MockProvider{}, &fakeConsole{}, models.RunConfig{UpdateMode: true})
	_, err := r.CheckSingle(context.Background(), models.Target{Path: t.TempDir(), Kind: models.KindSkin})
	if !errors.Is(err, ErrUpdateFailed) || !strings.Contains(err.Error(), models.ErrNotRepository) {
		t.Errorf("expected not-a-repository failure, got %v", err)
	}

	p := &vcs.MockProvider{FetchFn: func(context.Context, string) error { return errors.New("offline") }}
	r = newTestResolver(p, &fakeConsole{}, models.RunConfig{UpdateMode: true})
	_, err = r.CheckSingle(context.Background(), models.Target{Path: "/w", Kind: models.KindCore})
	if !errors.Is(err, ErrUpdateFailed) || !strings.Contains(err.Error(), models.ErrFetchFailed) {
		t.Errorf("expected fetch failure, got %v", err)
	}
}

func TestPullSingle(t *testing.T) {
	tests := []struct {
		name       string
		behind     int
		answer     bool
		auto       bool
		pullErr    error
		wantResult UpdateResult
		wantErr    bool
		wantPrompt bool
	}{
		{name: "up to date", behind: 0, answer: true, wantResult: UpdateAlreadyCurrent},
		{name: "confirmed", behind: 2, answer: true, wantResult: UpdatePulled, wantPrompt: true},
		{name: "declined", behind: 2, answer: false, wantResult: UpdateDeclined, wantPrompt: true},
		{name: "auto confirm", behind: 1, auto: true, wantResult: UpdatePulled},
		{
			name: "pull fails", behind: 5, answer: true, wantPrompt: true,
			pullErr:    &vcs.Failure{Kind: vcs.FailureExit, Op: "git pull", Message: "error: Your local changes would be overwritten"},
			wantResult: UpdatePullFailed, wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &vcs.MockProvider{
				CurrentBranchFn: onBranch("feature-x"),
				BehindCountFn:   behindBy(tt.behind),
				PullFn:          func(context.Context, string) error { return tt.pullErr },
			}
			c := &fakeConsole{answer: tt.answer}
			r := newTestResolver(p, c, models.RunConfig{UpdateMode: true, AutoConfirm: tt.auto})

			s, err := r.CheckSingle(context.Background(), models.Target{Path: "/w/extensions/Foo", Kind: models.KindExtension})
			if err != nil {
				t.Fatalf("unexpected check error: %v", err)
			}

			s, result, err := r.PullSingle(context.Background(), s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.wantResult {
				t.Errorf("expected %v, got %v", tt.wantResult, result)
			}
			if (len(c.prompts) == 1) != tt.wantPrompt {
				t.Errorf("expected prompt=%v, got %v", tt.wantPrompt, c.prompts)
			}
			if tt.wantPrompt && !strings.Contains(c.prompts[0], "commit") {
				t.Errorf("unexpected prompt %q", c.prompts[0])
			}
			if tt.pullErr != nil && s.PullError != "error: Your local changes would be overwritten" {
				t.Errorf("expected provider text to be kept, got %q", s.PullError)
			}
		})
	}
}

func TestSinglePromptText(t *testing.T) {
	got := singlePrompt(models.RepoStatus{Behind: 1, Dirty: true})
	if !strings.Contains(got, "Pull 1 commit?") {
		t.Errorf("unexpected prompt %q", got)
	}
	if !strings.Contains(got, "WARNING: Repository has uncommitted changes!") {
		t.Errorf("expected dirty warning in %q", got)
	}
	if strings.Contains(singlePrompt(models.RepoStatus{Behind: 3}), "WARNING") {
		t.Error("did not expect a warning for a clean tree")
	}
}

func TestOnPullRunsBeforePull(t *testing.T) {
	var order []string
	p := &vcs.MockProvider{
		BehindCountFn: behindBy(2),
		PullFn: func(ctx context.Context, path string) error {
			order = append(order, "pull")
			return nil
		},
	}
	r := newTestResolver(p, &fakeConsole{}, models.RunConfig{UpdateMode: true, AutoConfirm: true})
	r.OnPull(func(s models.RepoStatus) {
		order = append(order, "notify:"+s.Name)
	})

	s, err := r.CheckSingle(context.Background(), models.Target{Path: "/w/skins/Vector", Kind: models.KindSkin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := r.PullSingle(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 2 || order[0] != "notify:Vector" || order[1] != "pull" {
		t.Errorf("expected notify before pull, got %v", order)
	}
}
