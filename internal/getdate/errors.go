package getdate

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenBufferOverflow means the expression has too many tokens.
	ErrTokenBufferOverflow = errors.New("too many tokens")
	// ErrUnrecognizedPhrase means no phrase matches at some position.
	ErrUnrecognizedPhrase = errors.New("unrecognized phrase")
	// ErrAmbiguousField means a date, time, zone or weekday was given twice.
	ErrAmbiguousField = errors.New("field given more than once")
	// ErrCalendarRange means a year, month or day is out of range, or the
	// result falls outside MinYear..MaxYear.
	ErrCalendarRange = errors.New("date out of range")
	// ErrInvalidTimeOfDay means an hour, minute or second is out of range.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// ParseError describes a failed parse. Err wraps one of the sentinel
// errors above; Pos is the index of the offending token, or -1.
type ParseError struct {
	Input string
	Pos   int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("parse date %q: %v at token %d", e.Input, e.Err, e.Pos)
	}
	return fmt.Sprintf("parse date %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
