package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"getdate/internal/config"
	"getdate/internal/timeparse"
	"getdate/internal/ui"

	"github.com/spf13/cobra"
)

var (
	compareEngines []string
	comparePick    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <expression...>",
	Short: "Compare getdate's answer with other date parsers",
	Long: `Parses the expression with getdate and with each configured engine
(when, naturaldate, dateparse), then prints every answer with its offset
from getdate's.

  getdate compare next friday
  getdate compare --engines dateparse "Jan 29, 2004"
  getdate compare --pick tomorrow noon`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceVarP(&compareEngines, "engines", "e", nil, "Engines to run (default from config)")
	compareCmd.Flags().BoolVarP(&comparePick, "pick", "p", false, "Choose the engines interactively")
	addReferenceFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	names := cfg.Compare.Engines
	if len(compareEngines) > 0 {
		names = compareEngines
	}
	if comparePick {
		names, err = ui.SelectEngines(timeparse.EngineNames, names)
		if err != nil {
			return err
		}
	}

	engines, err := timeparse.NewEngines(names)
	if err != nil {
		return err
	}

	parser, clk, err := newParser(cfg, refZone, refNow)
	if err != nil {
		return err
	}

	expr := strings.Join(args, " ")
	core, coreErr := parser.Parse(expr)
	results := timeparse.Compare(engines, expr, clk.Now())

	return printComparison(cmd.OutOrStdout(), cfg.Parser.Format, timeparse.Result{Engine: "getdate", Time: core, Err: coreErr}, results)
}

// printComparison writes one row per engine: name, answer, offset from
// getdate's answer
func printComparison(w io.Writer, format string, core timeparse.Result, results []timeparse.Result) error {
	if format == config.FormatUnix {
		format = config.FormatRFC3339
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tRESULT\tOFFSET")

	for _, r := range append([]timeparse.Result{core}, results...) {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t-\n", r.Engine, r.Err)
			continue
		}
		shown, err := formatTime(r.Time.In(displayLocation(core, r)), format)
		if err != nil {
			return err
		}
		offset := "-"
		if core.Err == nil {
			offset = timeparse.FormatOffset(r.Time.Sub(core.Time))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Engine, shown, offset)
	}

	return tw.Flush()
}

// displayLocation shows every answer in getdate's zone when it has one
func displayLocation(core, r timeparse.Result) *time.Location {
	if core.Err == nil {
		return core.Time.Location()
	}
	return r.Time.Location()
}
