package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kyleking/local-mw/internal/config"
	"github.com/kyleking/local-mw/internal/console"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const SourceURL = "https://github.com/kyleking/local-mw"

// Version is injected at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	cfgFile string

	cfg config.Config
	con = console.Std(false)
)

var rootCmd = &cobra.Command{
	Use:   "local-mw [PATH]",
	Short: "Check a MediaWiki checkout for out-of-date repositories",
	Long: `Check MediaWiki core, extensions and skins for updates
and update them if needed.

Repositories on master/main branches with updates will be prompted
for pull unless --yes is used. Use --report-only to skip pulling entirely.`,
	Version:       Version,
	Args:          usageArgs(cobra.MaximumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return wrapUsageError(err)
		}
		cfg = loaded

		con = console.Std(cfg.Verbose)
		if err := con.SetOutputFile(cfg.LogFile); err != nil {
			return fmt.Errorf("opening log file %q: %w", cfg.LogFile, err)
		}
		return nil
	},
	RunE: runScan,
}

func Execute() {
	err := rootCmd.Execute()
	closeErr := con.Close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", closeErr)
		if err == nil {
			os.Exit(1)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			if cmd, _, findErr := rootCmd.Find(os.Args[1:]); findErr == nil && cmd != nil {
				_ = cmd.Usage()
			} else {
				_ = rootCmd.Usage()
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return wrapUsageError(err)
	})
	rootCmd.SetVersionTemplate(versionText("{{.Version}}"))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default .local-mw.toml in the working directory or $HOME)")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("report-only", false, "Only report status, never pull")
	flags.BoolP("yes", "y", false, "Auto-confirm all pull prompts")
	flags.String("report-file", "", "Save results and summary to a file")
	flags.String("report-format", "text", "Report file format: text or toml")
	flags.String("log-file", "", "Mirror console output to a log file")
	flags.StringSlice("mainline-branch", nil, "Branch names eligible for automatic pulls (default master,main)")
	flags.Int("workers", 0, "Repositories checked at once, at most the number of CPUs (default: number of CPUs)")
	flags.Duration("command-timeout", 0, "Deadline for each git command (0 disables)")

	bindFlag(flags, "verbose", "verbose")
	bindFlag(flags, "report-only", "report-only")
	bindFlag(flags, "yes", "yes")
	bindFlag(flags, "report-file", "report-file")
	bindFlag(flags, "report-format", "report-format")
	bindFlag(flags, "log-file", "log-file")
	bindFlag(flags, "mainline-branches", "mainline-branch")
	bindFlag(flags, "workers", "workers")
	bindFlag(flags, "command-timeout", "command-timeout")
}

func bindFlag(flags *pflag.FlagSet, key, flag string) {
	if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}

func versionText(version string) string {
	return fmt.Sprintf("local-mw\nVersion: %s\nSource: %s\n", version, SourceURL)
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validate == nil {
			return nil
		}
		if err := validate(cmd, args); err != nil {
			return wrapUsageError(err)
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}

	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ")
}
