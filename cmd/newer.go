package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var newerDate string

var newerCmd = &cobra.Command{
	Use:   "newer --date <expression> [path...]",
	Short: "List files modified after a date",
	Long: `Walks the given paths (default: the current directory) and prints every
regular file modified after the instant named by --date.

  getdate newer --date yesterday
  getdate newer --date "last monday 9am" ./logs ./reports`,
	RunE: runNewer,
}

func init() {
	rootCmd.AddCommand(newerCmd)

	newerCmd.Flags().StringVarP(&newerDate, "date", "d", "", "Date expression files must be newer than (required)")
	_ = newerCmd.MarkFlagRequired("date")
	addReferenceFlags(newerCmd)
}

func runNewer(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	parser, _, err := newParser(cfg, refZone, refNow)
	if err != nil {
		return err
	}

	cutoff, err := parser.Parse(newerDate)
	if err != nil {
		return err
	}
	log.Debug().Time("cutoff", cutoff).Msg("Selecting files newer than cutoff")

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	out := cmd.OutOrStdout()
	return walkNewer(roots, cutoff, func(path string) {
		fmt.Fprintln(out, path)
	})
}

// walkNewer calls found for every regular file under roots whose
// modification time is after cutoff. Unreadable entries are skipped.
func walkNewer(roots []string, cutoff time.Time, found func(path string)) error {
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Skipping file")
				return nil
			}
			if info.ModTime().After(cutoff) {
				found(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return nil
}
