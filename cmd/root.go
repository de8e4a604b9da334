package cmd

import (
	"fmt"
	"os"

	"getdate/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "getdate",
	Short: "Turn English date expressions into timestamps",
	Long: `getdate converts free-form date expressions such as "next tuesday 5pm",
"2004-01-29 12:00 EST" or "3 days ago" into instants.

It parses one expression at a time, can compare its answer with other
date parsers, select files newer than a date, and keeps a local history
of what it parsed.`,
	Version:       GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.EnsureConfigDir(); err != nil {
		log.Error().Err(err).Msg("Failed to ensure config directory")
	}
}

// checkConfig loads the configuration and verifies this build satisfies
// its requires constraint
func checkConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "Fix the config file at ~/.getdate/config.yaml (or $GETDATE_CONFIG)\n")
		fmt.Fprintf(os.Stderr, "Run 'getdate config example' to see every option.\n")
		return nil, err
	}
	if err := cfg.CheckRequires(version); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// SetVersionInfo records the build metadata injected through ldflags
func SetVersionInfo(v, c, d, b string) {
	version = v
	commit = c
	date = d
	builtBy = b
	rootCmd.Version = GetVersion()
}

func GetVersion() string {
	return fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date)
}
