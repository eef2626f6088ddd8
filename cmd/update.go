package cmd

import (
	"context"
	"fmt"

	"github.com/kyleking/local-mw/internal/config"
	"github.com/kyleking/local-mw/internal/console"
	"github.com/kyleking/local-mw/internal/discovery"
	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/status"
	"github.com/kyleking/local-mw/internal/vcs"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update TYPE [NAME] [PATH]",
	Short: "Update MediaWiki core or a single extension or skin",
	Long: `Update a single repository. TYPE must be 'core', 'extension', or 'skin';
NAME is required for extension and skin.

Any repository that is behind is offered for pull, whatever its branch.`,
	Example: `  local-mw update core /var/www/w
  local-mw update extension VisualEditor /var/www/w
  local-mw update skin Vector`,
	Args: usageArgs(cobra.RangeArgs(1, 3)),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

type updateArgs struct {
	kind string
	name string
	path []string
}

// parseUpdateArgs splits TYPE [NAME] [PATH]. Core takes no name.
func parseUpdateArgs(args []string) (updateArgs, error) {
	u := updateArgs{kind: args[0]}
	rest := args[1:]

	kind, ok := models.ParseRepoKind(u.kind)
	if !ok {
		return u, wrapUsageError(fmt.Errorf("%w '%s': must be 'core', 'extension', or 'skin'", discovery.ErrInvalidKind, u.kind))
	}
	if kind != models.KindCore {
		if len(rest) == 0 {
			return u, wrapUsageError(fmt.Errorf("%s requires a name", kind))
		}
		u.name, rest = rest[0], rest[1:]
	}
	if len(rest) > 1 {
		return u, wrapUsageError(fmt.Errorf("unexpected argument '%s'", rest[1]))
	}
	u.path = rest
	return u, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	u, err := parseUpdateArgs(args)
	if err != nil {
		return err
	}
	base, err := installationPath(con, cfg, u.path)
	if err != nil {
		return err
	}

	provider := vcs.NewGitOperations(cfg.CommandTimeout, con)
	return updateSingle(cmd.Context(), con, provider, cfg, base, u.kind, u.name)
}

func updateSingle(ctx context.Context, con *console.Console, provider vcs.Provider, cfg config.Config, base, kindName, name string) error {
	target, err := discovery.ResolveTarget(base, kindName, name)
	if err != nil {
		return err
	}

	con.Infof("Checking %s at: %s\n", discovery.DisplayName(target.Kind, name), target.Path)

	resolver := status.NewResolver(provider, con, cfg.RunConfig(true))
	resolver.OnPull(func(models.RepoStatus) {
		con.Infoln("Pulling updates...")
	})

	s, err := resolver.CheckSingle(ctx, target)
	if err != nil {
		return err
	}

	con.Infof("\nRepository Status:\n")
	con.Infof("  Branch: %s\n", s.Branch)
	con.Infof("  Uncommitted changes: %s\n", s.DirtyText())
	behind := "Unknown"
	if s.TrackingKnown() {
		behind = fmt.Sprintf("%d", s.Behind)
	}
	con.Infof("  Commits behind: %s\n", behind)

	s, result, err := resolver.PullSingle(ctx, s)
	switch result {
	case status.UpdateAlreadyCurrent:
		con.Infoln("\n✅ Already up to date!")
	case status.UpdateDeclined:
		con.Infoln("Update cancelled.")
	case status.UpdatePulled:
		con.Infoln("\n✅ Successfully updated!")
	case status.UpdatePullFailed:
		con.Warnf("\n❌ Pull failed:\n%s\n", s.PullError)
		return status.ErrUpdateFailed
	}
	return err
}
