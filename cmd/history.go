package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"getdate/internal/clock"
	"getdate/internal/config"
	"getdate/internal/storage"
	"getdate/internal/timeparse"
	"getdate/internal/ui"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	pruneOlder   string
	pruneYes     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently parsed expressions",
	Long:  `Lists the expressions recorded by 'getdate parse', newest first.`,
	RunE:  runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old history entries",
	Long: `Deletes history entries older than history.retention from the config,
or older than --older-than when given (e.g. 7d, 2w, 36h).`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
	historyPruneCmd.Flags().StringVar(&pruneOlder, "older-than", "", "Delete entries older than this duration (default: history.retention)")
	historyPruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "Do not ask for confirmation")
}

func openHistory(cfg *config.Config) (*storage.Storage, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (set history.enabled: true in the config)")
	}
	store, err := storage.NewStorage(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No expressions recorded yet.")
		return nil
	}

	if err := printHistory(cmd.OutOrStdout(), cfg.Parser.Format, entries); err != nil {
		return err
	}

	if historyLimit > 0 && len(entries) == historyLimit {
		total, err := store.Count()
		if err != nil {
			return err
		}
		printHistoryTotal(cmd.OutOrStdout(), len(entries), total)
	}
	return nil
}

// printHistoryTotal notes how many entries --limit left out
func printHistoryTotal(w io.Writer, shown, total int) {
	if total <= shown {
		return
	}
	fmt.Fprintf(w, "\nShowing %d of %d entries (use --limit 0 for all)\n", shown, total)
}

// printHistory writes one row per entry: when it was parsed, the input and
// the result in format
func printHistory(w io.Writer, format string, entries []storage.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARSED AT\tEXPRESSION\tRESULT\tZONE")

	for _, e := range entries {
		result := "error: " + e.Error
		if e.OK() {
			loc, err := clock.Load(e.Zone)
			if err != nil {
				loc = time.Local
			}
			result, err = formatTime(e.Result.In(loc), format)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(tw, "%s\t%q\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Input, result, e.Zone)
	}

	return tw.Flush()
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	var retention time.Duration
	if pruneOlder != "" {
		retention, err = timeparse.ParseDuration(pruneOlder)
	} else {
		retention, err = cfg.RetentionDuration()
	}
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cutoff := time.Now().Add(-retention)
	if !pruneYes {
		ok, err := ui.Confirm(fmt.Sprintf("Delete history older than %s (before %s)?",
			timeparse.FormatDuration(retention), cutoff.Format("2006-01-02 15:04")))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Prune cancelled.")
			return nil
		}
	}

	removed, err := store.Prune(cutoff)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d entries\n", removed)
	return nil
}
