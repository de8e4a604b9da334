// Package clock supplies the current time and the local zone rules used
// to resolve date expressions.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// Clock reports the current instant and the location whose offset and
// daylight saving rules apply to it.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type system struct {
	loc *time.Location
}

// System returns a clock backed by time.Now in time.Local
func System() Clock {
	return system{loc: time.Local}
}

// In returns a clock backed by time.Now in loc
func In(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return system{loc: loc}
}

func (s system) Now() time.Time           { return time.Now().In(s.loc) }
func (s system) Location() *time.Location { return s.loc }

type fixed struct {
	now time.Time
	loc *time.Location
}

// Fixed returns a clock that always reports now, evaluated in loc.
// A nil loc means the location carried by now.
func Fixed(now time.Time, loc *time.Location) Clock {
	if loc == nil {
		loc = now.Location()
	}
	return fixed{now: now.In(loc), loc: loc}
}

func (f fixed) Now() time.Time           { return f.now }
func (f fixed) Location() *time.Location { return f.loc }

// Load resolves a zone name to a location. An empty name and "Local"
// both mean time.Local.
func Load(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Standard reports the standard-time offset of c's location at the
// current instant in minutes west of UTC. During daylight saving the
// hour it adds is taken back out.
func Standard(c Clock) int64 {
	now := c.Now().In(c.Location())
	_, offset := now.Zone()
	minutesWest := int64(-offset / 60)
	if now.IsDST() {
		minutesWest += 60
	}
	return minutesWest
}
