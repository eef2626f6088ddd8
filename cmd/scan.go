package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kyleking/local-mw/internal/batch"
	"github.com/kyleking/local-mw/internal/config"
	"github.com/kyleking/local-mw/internal/console"
	"github.com/kyleking/local-mw/internal/discovery"
	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/report"
	"github.com/kyleking/local-mw/internal/status"
	"github.com/kyleking/local-mw/internal/vcs"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func runScan(cmd *cobra.Command, args []string) error {
	base, err := installationPath(con, cfg, args)
	if err != nil {
		return err
	}

	provider := vcs.NewGitOperations(cfg.CommandTimeout, con)
	r := scanInstallation(cmd.Context(), con, provider, cfg, base, stderrIsTerminal())

	if _, err := r.WriteTo(con, report.Options{Color: stdoutIsTerminal() && cfg.LogFile == ""}); err != nil {
		return err
	}
	saveReport(con, cfg, r)
	return nil
}

// installationPath takes the path from the argument, then config, then asks
// for it, and checks that it looks like a MediaWiki checkout.
func installationPath(con *console.Console, cfg config.Config, args []string) (string, error) {
	path := cfg.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		line, err := con.ReadLine("Enter MediaWiki installation path: ")
		if err != nil {
			return "", fmt.Errorf("reading installation path: %w", err)
		}
		path = strings.TrimSpace(line)
	}

	if err := discovery.ValidateInstallation(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

// scanInstallation checks core, then every extension, then every skin.
func scanInstallation(ctx context.Context, con *console.Console, provider vcs.Provider, cfg config.Config, base string, showProgress bool) report.Report {
	run := cfg.RunConfig(false)
	resolver := status.NewResolver(provider, con, run)
	scanner := batch.NewScanner(resolver.Resolve, run.Workers)

	con.Infof("Checking MediaWiki installation at: %s\n", base)
	if !run.ReportOnly {
		con.Infof("Auto-pull enabled for %s branches with updates\n", strings.Join(mainlineNames(run), "/"))
	}
	con.Infoln("This may take a moment...")
	con.Debugf("Checking up to %d repositories at once", scanner.Workers())

	con.Infoln("Checking MediaWiki core...")
	core := []models.RepoStatus{resolver.Resolve(ctx, base, models.KindCore)}

	// A progress bar would fight with confirmation prompts and verbose
	// tracing, so it only shows when neither can happen.
	progress := showProgress && !run.Verbose && (run.ReportOnly || run.AutoConfirm)

	sections := []report.Section{report.NewSection(models.KindCore, core)}
	for _, kind := range []models.RepoKind{models.KindExtension, models.KindSkin} {
		dir := filepath.Join(base, kind.Dir())
		targets := discovery.Targets(dir, kind)

		con.Infof("Checking %s (%d)...\n", kind.Dir(), len(targets))
		if run.Verbose {
			rule := strings.Repeat("=", 80)
			con.Infof("\n%s\nScanning %s directory: %s\n%s\n", rule, kind.Dir(), dir, rule)
		}

		scanner.OnProgress(nil)
		if progress && len(targets) > 0 {
			bar := newProgressBar(len(targets), kind.Dir())
			scanner.OnProgress(func(batch.Progress) { _ = bar.Add(1) })
			statuses := scanner.Scan(ctx, targets)
			_ = bar.Finish()
			sections = append(sections, report.NewSection(kind, statuses))
			continue
		}
		sections = append(sections, report.NewSection(kind, scanner.Scan(ctx, targets)))
	}

	return report.Report{Generated: time.Now(), Sections: sections}
}

func newProgressBar(total int, label string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}

// saveReport writes the report file if one was asked for. Failing to write
// it is a warning, the scan itself already succeeded.
func saveReport(con *console.Console, cfg config.Config, r report.Report) {
	if cfg.ReportFile == "" {
		return
	}
	if err := report.Save(cfg.ReportFile, cfg.ReportFormat, r); err != nil {
		con.Warnf("Warning: Could not write report file: %s (%v)\n", cfg.ReportFile, err)
		return
	}
	con.Infof("Report saved to: %s\n", cfg.ReportFile)
}

func mainlineNames(run models.RunConfig) []string {
	if len(run.MainlineBranches) == 0 {
		return models.DefaultMainlineBranches
	}
	return run.MainlineBranches
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}
