package getdate

// dstMode says whether daylight saving applies to the resolved fields.
type dstMode int

const (
	dstOn dstMode = iota
	dstOff
	dstMaybe
)

// civil is a wall-clock date and time as written, before any zone or
// range handling. Years below 100 are still two-digit.
type civil struct {
	year, month, day     int64
	hour, minute, second int64
}

// state accumulates everything recognized while parsing one expression.
type state struct {
	civil

	dst        dstMode
	timezone   int64 // minutes west of UTC
	dayOrdinal int64
	dayNumber  int64 // 0 is Sunday

	haveDate, haveDay, haveRel, haveTime, haveZone int

	relMonth   int64
	relSeconds int64
}

// ambiguous names the first field recognized more than once, if any.
func (s *state) ambiguous() (string, bool) {
	switch {
	case s.haveTime > 1:
		return "time", true
	case s.haveZone > 1:
		return "zone", true
	case s.haveDate > 1:
		return "date", true
	case s.haveDay > 1:
		return "day of week", true
	}
	return "", false
}
