package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"getdate/internal/clock"
	"getdate/internal/config"
	"getdate/internal/getdate"
	"getdate/internal/storage"
	"getdate/internal/ui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	outputUnix   bool
	refNow       string
	refZone      string
	clampMonths  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [expression...]",
	Short: "Convert a date expression to a timestamp",
	Long: `Parses a free-form date expression and prints the instant it names.

Arguments are joined with spaces, so quoting is optional:

  getdate parse next tuesday 5pm
  getdate parse "2004-01-29 12:00 EST"
  getdate parse 3 days ago --unix

Without arguments you are prompted for an expression.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: rfc3339, unix, rfc1123, ctime or iso (default from config)")
	parseCmd.Flags().BoolVarP(&outputUnix, "unix", "u", false, "Print seconds since the epoch (same as --format unix)")
	addReferenceFlags(parseCmd)
}

// addReferenceFlags registers --now and --tz, shared by every command
// that resolves expressions
func addReferenceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&refNow, "now", "", "Resolve relative to this RFC3339 instant instead of the current time")
	cmd.Flags().StringVar(&refZone, "tz", "", "Timezone to resolve in (IANA name or Local, default from config)")
	cmd.Flags().BoolVar(&clampMonths, "clamp-months", false, "Let month arithmetic past a short month's end land on its last day (jan 31 +1 month is the end of february)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	format := cfg.Parser.Format
	if outputFormat != "" {
		format = outputFormat
	}
	if outputUnix {
		format = config.FormatUnix
	}
	if _, err := formatTime(time.Time{}, format); err != nil {
		return err
	}

	parser, clk, err := newParser(cfg, refZone, refNow)
	if err != nil {
		return err
	}

	expr := strings.Join(args, " ")
	if len(args) == 0 {
		expr, err = ui.PromptExpression(func(s string) error {
			_, err := parser.Parse(s)
			return err
		})
		if err != nil {
			return err
		}
	}

	t, parseErr := parser.Parse(expr)
	recordHistory(cfg, expr, t, clk.Location(), parseErr)
	if parseErr != nil {
		return parseErr
	}

	out, err := formatTime(t, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// newParser builds a parser for the configured zone, with the zone and
// reference instant optionally overridden. The returned clock is the one
// the parser resolves against.
func newParser(cfg *config.Config, zone, now string) (*getdate.Parser, clock.Clock, error) {
	var (
		loc *time.Location
		err error
	)
	if zone != "" {
		loc, err = clock.Load(zone)
	} else {
		loc, err = cfg.Location()
	}
	if err != nil {
		return nil, nil, err
	}

	clk := clock.In(loc)
	if now != "" {
		ref, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --now %q (expected RFC3339, e.g. 2024-03-06T14:30:00Z): %w", now, err)
		}
		clk = clock.Fixed(ref, loc)
	}

	opts := []getdate.Option{
		getdate.WithClock(clk),
		getdate.WithLogger(log.Logger.With().Str("component", "getdate").Logger()),
	}
	if clampMonths {
		opts = append(opts, getdate.WithMonthClamp())
	}
	return getdate.New(opts...), clk, nil
}

// formatTime renders t in one of the config.Format* layouts
func formatTime(t time.Time, format string) (string, error) {
	switch format {
	case config.FormatRFC3339:
		return t.Format(time.RFC3339), nil
	case config.FormatUnix:
		return strconv.FormatInt(t.Unix(), 10), nil
	case config.FormatRFC1123:
		return t.Format(time.RFC1123Z), nil
	case config.FormatCtime:
		return t.Format(time.ANSIC), nil
	case config.FormatISO:
		return t.Format("2006-01-02 15:04:05 -0700"), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected rfc3339, unix, rfc1123, ctime or iso)", format)
}

// recordHistory stores the outcome of a parse when history is enabled.
// Failures to record are logged, never returned.
func recordHistory(cfg *config.Config, expr string, t time.Time, loc *time.Location, parseErr error) {
	if !cfg.History.Enabled {
		return
	}

	store, err := storage.NewStorage(cfg.History.Path)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to open history, parse not recorded")
		return
	}
	defer store.Close()

	entry := &storage.Entry{
		Input:  expr,
		Result: t,
		Zone:   loc.String(),
	}
	if parseErr != nil {
		var perr *getdate.ParseError
		if errors.As(parseErr, &perr) {
			entry.Error = perr.Err.Error()
		} else {
			entry.Error = parseErr.Error()
		}
	}

	if err := store.AddEntry(entry); err != nil {
		log.Warn().Err(err).Msg("Failed to record parse in history")
	}
}
