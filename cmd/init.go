package cmd

import (
	"fmt"
	"io"
	"os"

	"getdate/internal/config"
	"getdate/internal/ui"

	"github.com/spf13/cobra"
)

var (
	updateConfig bool
	assumeYes    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize getdate configuration",
	Long: `Creates the configuration directory and an example config file at ~/.getdate/config.yaml

Use --update to migrate an existing config file to the latest schema.
Flat keys from older files (timezone, format, retention, database.path)
move into the parser and history sections, and missing optional sections
are added with example values. The result is validated before anything
is written, and the previous file is kept as config.yaml.backup.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&updateConfig, "update", false, "Migrate existing config to latest schema (moves legacy keys, adds new optional sections)")
	initCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Apply the update without asking")
}

// confirmFunc asks whether a planned change should go ahead
type confirmFunc func(message string) (bool, error)

func runInit(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	configPath, err := config.GetConfigPath()
	if err != nil {
		return printError("failed to get config path", err)
	}

	if err := config.EnsureConfigDir(); err != nil {
		return printError("failed to create config directory", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if !updateConfig {
			fmt.Fprintf(w, "Config file already exists at: %s\n", configPath)
			fmt.Fprintln(w, "Run 'getdate init --update' to migrate it, or delete it to start over.")
			return nil
		}
		confirm := ui.Confirm
		if assumeYes {
			confirm = func(string) (bool, error) { return true, nil }
		}
		return updateExistingConfig(w, configPath, confirm)
	}

	if updateConfig {
		fmt.Fprintln(w, "No existing config file found, creating one.")
	}
	return createNewConfig(w, configPath)
}

// createNewConfig writes the example config to configPath
func createNewConfig(w io.Writer, configPath string) error {
	exampleData, err := config.GenerateExampleConfig()
	if err != nil {
		return printError("failed to generate example config", err)
	}

	if err := os.WriteFile(configPath, exampleData, 0600); err != nil {
		return printError("failed to create config file", err)
	}

	fmt.Fprintf(w, "✓ Config file created at: %s\n", configPath)
	fmt.Fprintln(w, "\nThe defaults resolve expressions in your local zone and print RFC 3339.")
	fmt.Fprintln(w, "Edit parser.timezone or parser.format to change that, then try:")
	fmt.Fprintln(w, "  getdate parse next tuesday 5pm")
	return nil
}

// updateExistingConfig migrates the file at configPath in place. Nothing is
// written when the file is current, the migrated result does not validate,
// or confirm declines.
func updateExistingConfig(w io.Writer, configPath string, confirm confirmFunc) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return printError("failed to read config file", err)
	}

	updatedData, summary, err := config.MigrateConfig(data)
	if err != nil {
		return printError("failed to migrate config", err)
	}

	if !summary.NeedsUpdate {
		fmt.Fprintf(w, "✓ Config file is already up to date (version %d)\n", summary.FromVersion)
		return nil
	}

	if len(summary.MissingOptionalSections) > 0 {
		updatedData, err = config.ApplyOptionalSections(updatedData, summary.MissingOptionalSections)
		if err != nil {
			return printError("failed to apply optional sections", err)
		}
	}

	if _, err := config.Parse(updatedData); err != nil {
		return printError("migrated config is invalid", err)
	}

	writeMigrationPlan(w, summary)

	backupPath := configPath + ".backup"
	fmt.Fprintf(w, "\nA backup will be created at: %s\n", backupPath)
	ok, err := confirm("Apply these changes?")
	if err != nil {
		return printError("failed to read confirmation", err)
	}
	if !ok {
		fmt.Fprintln(w, "Update cancelled.")
		return nil
	}

	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return printError("failed to create backup", err)
	}
	if err := os.WriteFile(configPath, updatedData, 0600); err != nil {
		return printError("failed to write updated config", err)
	}

	fmt.Fprintf(w, "✓ Config file updated to version %d\n", summary.ToVersion)
	return nil
}

// writeMigrationPlan lists what an update is about to change
func writeMigrationPlan(w io.Writer, summary *config.MigrationSummary) {
	if summary.FromVersion < summary.ToVersion {
		fmt.Fprintf(w, "Config migration: v%d → v%d (the file will be reformatted)\n", summary.FromVersion, summary.ToVersion)
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Legacy fields to move", summary.DeprecatedFields},
		{"Fields to add with defaults", summary.MissingFields},
		{"Optional sections to add", summary.MissingOptionalSections},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.title)
		for _, item := range s.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

// printError wraps err with message for cobra to report
func printError(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}
