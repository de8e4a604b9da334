// Package getdate turns free-form English date expressions such as
// "next tuesday 5pm", "2004-01-29" or "3 months ago" into instants.
//
// Parsing is a single pass over a bounded token buffer. Phrase rules are
// tried in a fixed order at each position and record what they recognize
// in a per-call state; the state is then resolved against the clock.
// A Parser holds no mutable state and is safe for concurrent use.
package getdate

import (
	"fmt"
	"time"

	"getdate/internal/clock"

	"github.com/rs/zerolog"
)

// Parser resolves date expressions against a clock.
type Parser struct {
	clock       clock.Clock
	logger      zerolog.Logger
	clampMonths bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the source of the current time and local zone rules.
func WithClock(c clock.Clock) Option {
	return func(p *Parser) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithLogger sets the logger that receives one debug event per parse.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// WithMonthClamp makes month arithmetic that lands past the end of a
// short month resolve to that month's last day, so "1 month ago" on
// March 31 gives the last day of February instead of an error.
func WithMonthClamp() Option {
	return func(p *Parser) {
		p.clampMonths = true
	}
}

// New returns a Parser using the system clock unless configured otherwise.
func New(opts ...Option) *Parser {
	p := &Parser{
		clock:  clock.System(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse resolves input against the system clock.
func Parse(input string) (time.Time, error) {
	return New().Parse(input)
}

// Parse resolves input to an instant in the clock's location. Every
// error is a *ParseError wrapping one of the package's sentinel errors.
func (p *Parser) Parse(input string) (time.Time, error) {
	sec, err := p.resolve(input)
	if err != nil {
		p.logger.Debug().Str("input", input).Err(err).Msg("Failed to parse date")
		return time.Time{}, err
	}
	t := time.Unix(sec, 0).In(p.clock.Location())
	p.logger.Debug().Str("input", input).Time("result", t).Msg("Parsed date")
	return t, nil
}

func (p *Parser) resolve(input string) (int64, error) {
	loc := p.clock.Location()
	now := p.clock.Now().In(loc)
	zone := clock.Standard(p.clock)

	st := state{
		civil: civil{
			year:  int64(now.Year()),
			month: int64(now.Month()),
			day:   int64(now.Day()),
		},
		timezone: zone,
		dst:      dstMaybe,
	}

	tokens, err := tokenize(input)
	if err != nil {
		return 0, &ParseError{Input: input, Pos: -1, Err: err}
	}

	m := matcher{tokens: tokens, st: &st}
	for m.pos < len(tokens) {
		if !m.phrase() {
			return 0, &ParseError{
				Input: input,
				Pos:   m.pos,
				Err:   fmt.Errorf("%w: unexpected %s", ErrUnrecognizedPhrase, tokens[m.pos]),
			}
		}
	}

	if field, ok := st.ambiguous(); ok {
		return 0, &ParseError{Input: input, Pos: -1, Err: fmt.Errorf("%w: %s", ErrAmbiguousField, field)}
	}

	var start int64
	if st.haveDate > 0 || st.haveTime > 0 || st.haveDay > 0 {
		start, err = convert(loc, st.civil, st.timezone, st.dst)
		if err != nil {
			return 0, &ParseError{Input: input, Pos: -1, Err: err}
		}
	} else {
		start = now.Unix()
		if st.haveRel == 0 {
			start -= int64((now.Hour()*60+now.Minute())*60 + now.Second())
		}
	}

	start += st.relSeconds
	delta, err := relativeMonth(loc, start, st.relMonth, st.timezone, p.clampMonths)
	if err != nil {
		return 0, &ParseError{Input: input, Pos: -1, Err: err}
	}
	start += delta

	if st.haveDay > 0 && st.haveDate == 0 {
		start += relativeDate(loc, start, st.dayOrdinal, st.dayNumber)
	}

	if !inRange(start) {
		return 0, &ParseError{
			Input: input,
			Pos:   -1,
			Err:   fmt.Errorf("%w: result outside years %d..%d", ErrCalendarRange, MinYear, MaxYear),
		}
	}
	return start, nil
}
