package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"getdate/internal/config"
	"getdate/internal/timeparse"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing and viewing getdate configuration.`,
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Display example configuration",
	Long: `Displays the complete example configuration with all available options.

Use this to:
- See which timezone, output format and history options exist
- Compare against your existing config to find missing sections
- Copy sections to add to your own config file`,
	RunE: runConfigExample,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays your current configuration file.

This shows the raw YAML content of your config file at ~/.getdate/config.yaml
(or the path specified by GETDATE_CONFIG environment variable).`,
	RunE: runConfigShow,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and print the effective settings",
	Long: `Loads the configuration the same way every other command does, applies
defaults for anything left out, and prints the values getdate will use.`,
	RunE: runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configExampleCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigExample(cmd *cobra.Command, args []string) error {
	exampleData, err := config.GenerateExampleConfig()
	if err != nil {
		return fmt.Errorf("failed to generate example config: %w", err)
	}

	fmt.Println("# Example getdate configuration with all available options:")
	fmt.Println("# Copy relevant sections to your config file at ~/.getdate/config.yaml")
	fmt.Println()
	fmt.Print(string(exampleData))

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s\nRun 'getdate init' to create one", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fmt.Printf("# Configuration file: %s\n\n", configPath)
	fmt.Print(string(data))

	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}
	return printConfigCheck(cmd.OutOrStdout(), cfg)
}

// printConfigCheck writes the effective settings of a loaded config
func printConfigCheck(out io.Writer, cfg *config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	retention, err := cfg.RetentionDuration()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Configuration is valid")
	fmt.Fprintf(out, "  timezone:  %s\n", loc)
	fmt.Fprintf(out, "  format:    %s\n", cfg.Parser.Format)
	if cfg.History.Enabled {
		fmt.Fprintf(out, "  history:   %s (kept %s)\n", cfg.History.Path, timeparse.FormatDuration(retention))
	} else {
		fmt.Fprintln(out, "  history:   disabled")
	}
	engines := make([]string, 0, len(timeparse.EngineNames))
	for _, name := range timeparse.EngineNames {
		if cfg.HasEngine(name) {
			engines = append(engines, name)
		} else {
			engines = append(engines, name+" (off)")
		}
	}
	fmt.Fprintf(out, "  compare:   %s\n", strings.Join(engines, ", "))
	if cfg.Requires != "" {
		fmt.Fprintf(out, "  requires:  %s (running %s)\n", cfg.Requires, version)
	}

	return nil
}
