package cmd

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleking/local-mw/internal/app"
	"github.com/kyleking/local-mw/internal/config"
	"github.com/kyleking/local-mw/internal/console"
	"github.com/kyleking/local-mw/internal/status"
	"github.com/kyleking/local-mw/internal/vcs"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [PATH]",
	Short: "Browse repository status in an interactive dashboard",
	Long: `Scan the installation and show results live in a terminal dashboard.
The dashboard only reports; it never pulls.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	flags := tuiCmd.Flags()
	flags.Duration("fetch-ttl", config.DefaultFetchTTL, "Skip fetching repositories fetched this recently when rescanning (0 always fetches)")
	bindFlag(flags, "fetch-ttl", "fetch-ttl")
}

func runTUI(cmd *cobra.Command, args []string) error {
	base, err := installationPath(con, cfg, args)
	if err != nil {
		return err
	}

	// The dashboard owns the terminal, so checks run silently and without
	// prompts.
	quiet := console.New(strings.NewReader(""), io.Discard, io.Discard, false)
	run := cfg.RunConfig(false)
	run.ReportOnly = true
	run.Verbose = false

	var provider vcs.Provider = vcs.NewGitOperations(cfg.CommandTimeout, quiet)
	var recent *vcs.RecentFetch
	if cfg.FetchTTL > 0 {
		recent = vcs.NewRecentFetch(provider, cfg.FetchTTL)
		provider = recent
	}

	resolver := status.NewResolver(provider, quiet, run)
	model := app.New(base, resolver.Resolve, run.Workers)
	if recent != nil {
		model = model.WithFetchReset(recent.Reset)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
