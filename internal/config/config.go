package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/report"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "LOCAL_MW"
	FileName  = ".local-mw"
)

// Config holds all runtime configuration for one run.
// Values are populated from .local-mw.toml, LOCAL_MW_* env vars, and CLI flags.
type Config struct {
	Path             string        `mapstructure:"path"`
	Verbose          bool          `mapstructure:"verbose"`
	ReportOnly       bool          `mapstructure:"report-only"`
	Yes              bool          `mapstructure:"yes"`
	ReportFile       string        `mapstructure:"report-file"`
	ReportFormat     string        `mapstructure:"report-format"`
	LogFile          string        `mapstructure:"log-file"`
	MainlineBranches []string      `mapstructure:"mainline-branches"`
	Workers          int           `mapstructure:"workers"`
	CommandTimeout   time.Duration `mapstructure:"command-timeout"`
	FetchTTL         time.Duration `mapstructure:"fetch-ttl"`
}

// DefaultFetchTTL is how long the dashboard trusts a fetch before a rescan
// contacts the remote again.
const DefaultFetchTTL = 2 * time.Minute

// Init points viper at the config file and environment. A missing config
// file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(FileName)
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("report-only", false)
	viper.SetDefault("yes", false)
	viper.SetDefault("report-file", "")
	viper.SetDefault("report-format", report.FormatText)
	viper.SetDefault("log-file", "")
	viper.SetDefault("mainline-branches", models.DefaultMainlineBranches)
	viper.SetDefault("workers", 0)
	viper.SetDefault("command-timeout", time.Duration(0))
	viper.SetDefault("fetch-ttl", DefaultFetchTTL)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !report.ValidFormat(c.ReportFormat) {
		return fmt.Errorf("invalid report-format %q (want %s or %s)", c.ReportFormat, report.FormatText, report.FormatTOML)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command-timeout must not be negative, got %s", c.CommandTimeout)
	}
	if c.FetchTTL < 0 {
		return fmt.Errorf("fetch-ttl must not be negative, got %s", c.FetchTTL)
	}
	if len(c.MainlineBranches) == 0 {
		return errors.New("mainline-branches must name at least one branch")
	}
	return nil
}

// RunConfig converts to the read-only policy switches handed to the resolver
// and scanner.
func (c Config) RunConfig(updateMode bool) models.RunConfig {
	branches := make([]string, 0, len(c.MainlineBranches))
	for _, b := range c.MainlineBranches {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}

	return models.RunConfig{
		Verbose:          c.Verbose,
		ReportOnly:       c.ReportOnly,
		AutoConfirm:      c.Yes,
		UpdateMode:       updateMode,
		MainlineBranches: branches,
		Workers:          c.Workers,
		CommandTimeout:   c.CommandTimeout,
	}
}
