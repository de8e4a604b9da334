package timeparse

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/tj/go-naturaldate"
)

// Engine is a third-party date parser shown next to getdate for comparison
type Engine interface {
	Name() string
	Parse(input string, ref time.Time) (time.Time, error)
}

// EngineNames lists the engines NewEngine knows, in display order
var EngineNames = []string{"when", "naturaldate", "dateparse"}

// NewEngine returns the engine with the given name
func NewEngine(name string) (Engine, error) {
	switch name {
	case "when":
		w := when.New(nil)
		w.Add(en.All...)
		w.Add(common.All...)
		return whenEngine{w: w}, nil
	case "naturaldate":
		return naturaldateEngine{}, nil
	case "dateparse":
		return dateparseEngine{}, nil
	}
	return nil, fmt.Errorf("unknown engine %q (expected one of %v)", name, EngineNames)
}

// NewEngines returns the engines for names, in order
func NewEngines(names []string) ([]Engine, error) {
	engines := make([]Engine, 0, len(names))
	for _, name := range names {
		e, err := NewEngine(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}

// whenEngine finds a date expression anywhere in the input:
// "2pm", "yesterday at 3pm", "2 hours ago"
type whenEngine struct {
	w *when.Parser
}

func (whenEngine) Name() string { return "when" }

func (e whenEngine) Parse(input string, ref time.Time) (time.Time, error) {
	parsed, err := e.w.Parse(input, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse datetime: %w", err)
	}
	if parsed == nil {
		return time.Time{}, fmt.Errorf("could not understand time expression: %q", input)
	}
	return parsed.Time, nil
}

// naturaldateEngine resolves relative phrases towards the future:
// "next week", "in 3 days", "december 25th"
type naturaldateEngine struct{}

func (naturaldateEngine) Name() string { return "naturaldate" }

func (naturaldateEngine) Parse(input string, ref time.Time) (time.Time, error) {
	t, err := naturaldate.Parse(input, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", input, err)
	}
	return t, nil
}

// dateparseEngine reads absolute dates in many layouts without being told
// the layout: "2004-01-29", "Jan 29, 2004", "1706745600"
type dateparseEngine struct{}

func (dateparseEngine) Name() string { return "dateparse" }

func (dateparseEngine) Parse(input string, ref time.Time) (time.Time, error) {
	t, err := dateparse.ParseIn(input, ref.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", input, err)
	}
	return t, nil
}

// Result is one engine's answer for an expression
type Result struct {
	Engine string
	Time   time.Time
	Err    error
}

// Compare runs every engine on input against ref
func Compare(engines []Engine, input string, ref time.Time) []Result {
	results := make([]Result, 0, len(engines))
	for _, e := range engines {
		t, err := e.Parse(input, ref)
		results = append(results, Result{Engine: e.Name(), Time: t, Err: err})
	}
	return results
}
