package getdate

import "strings"

// Kind identifies what a token stands for.
type Kind int

const (
	KindEOF Kind = iota
	KindOperator
	KindNumber
	KindMonth
	KindWeekday
	KindMeridian
	KindZone
	KindDaylightZone
	KindDST
	KindSecondsUnit
	KindMonthUnit
	KindAgo
)

var kindNames = [...]string{
	KindEOF:          "EOF",
	KindOperator:     "operator",
	KindNumber:       "number",
	KindMonth:        "month",
	KindWeekday:      "weekday",
	KindMeridian:     "meridian",
	KindZone:         "zone",
	KindDaylightZone: "daylight zone",
	KindDST:          "dst",
	KindSecondsUnit:  "seconds unit",
	KindMonthUnit:    "month unit",
	KindAgo:          "ago",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Meridian values carried by KindMeridian tokens.
const (
	meridianAM = 0
	meridianPM = 1
)

// hours converts whole hours to zone minutes west of UTC.
func hours(n int64) int64 { return n * 60 }

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// entry is one row of the word table. A word may be abbreviated down to
// abbrev characters; an abbrev of zero means the full word is required.
type entry struct {
	abbrev int
	word   string
	kind   Kind
	value  int64
}

// lexicon is searched in order and the first match wins, so the row order
// settles conflicts between zone abbreviations ("bst", "gst", "nst",
// "sst") and must not be rearranged.
var lexicon = []entry{
	{0, "am", KindMeridian, meridianAM},
	{0, "pm", KindMeridian, meridianPM},

	{3, "january", KindMonth, 1},
	{3, "february", KindMonth, 2},
	{3, "march", KindMonth, 3},
	{3, "april", KindMonth, 4},
	{3, "may", KindMonth, 5},
	{3, "june", KindMonth, 6},
	{3, "july", KindMonth, 7},
	{3, "august", KindMonth, 8},
	{3, "september", KindMonth, 9},
	{3, "october", KindMonth, 10},
	{3, "november", KindMonth, 11},
	{3, "december", KindMonth, 12},

	{2, "sunday", KindWeekday, 0},
	{3, "monday", KindWeekday, 1},
	{2, "tuesday", KindWeekday, 2},
	{3, "wednesday", KindWeekday, 3},
	{2, "thursday", KindWeekday, 4},
	{2, "friday", KindWeekday, 5},
	{2, "saturday", KindWeekday, 6},

	// Zone values are minutes west of UTC.
	{0, "gmt", KindZone, hours(0)},
	{0, "ut", KindZone, hours(0)},
	{0, "utc", KindZone, hours(0)},
	{0, "wet", KindZone, hours(0)},
	{0, "bst", KindDaylightZone, hours(0)}, // British Summer, not Brazil Standard
	{0, "wat", KindZone, hours(1)},
	{0, "at", KindZone, hours(2)},
	{0, "nft", KindZone, hours(3) + 30},
	{0, "nst", KindZone, hours(3) + 30}, // Newfoundland, not North Sumatra
	{0, "ndt", KindDaylightZone, hours(3) + 30},
	{0, "ast", KindZone, hours(4)},
	{0, "adt", KindDaylightZone, hours(4)},
	{0, "est", KindZone, hours(5)},
	{0, "edt", KindDaylightZone, hours(5)},
	{0, "cst", KindZone, hours(6)},
	{0, "cdt", KindDaylightZone, hours(6)},
	{0, "mst", KindZone, hours(7)},
	{0, "mdt", KindDaylightZone, hours(7)},
	{0, "pst", KindZone, hours(8)},
	{0, "pdt", KindDaylightZone, hours(8)},
	{0, "yst", KindZone, hours(9)},
	{0, "ydt", KindDaylightZone, hours(9)},
	{0, "hst", KindZone, hours(10)},
	{0, "hdt", KindDaylightZone, hours(10)},
	{0, "cat", KindZone, hours(10)},
	{0, "ahst", KindZone, hours(10)},
	{0, "nt", KindZone, hours(11)},
	{0, "idlw", KindZone, hours(12)},
	{0, "cet", KindZone, -hours(1)},
	{0, "met", KindZone, -hours(1)},
	{0, "mewt", KindZone, -hours(1)},
	{0, "mest", KindDaylightZone, -hours(1)},
	{0, "swt", KindZone, -hours(1)},
	{0, "sst", KindDaylightZone, -hours(1)}, // Swedish Summer, not South Sumatra
	{0, "fwt", KindZone, -hours(1)},
	{0, "fst", KindDaylightZone, -hours(1)},
	{0, "eet", KindZone, -hours(2)},
	{0, "bt", KindZone, -hours(3)},
	{0, "it", KindZone, -hours(3) - 30},
	{0, "zp4", KindZone, -hours(4)},
	{0, "zp5", KindZone, -hours(5)},
	{0, "ist", KindZone, -hours(5) - 30},
	{0, "zp6", KindZone, -hours(6)},
	{0, "wast", KindZone, -hours(7)},
	{0, "wadt", KindDaylightZone, -hours(7)},
	{0, "jt", KindZone, -hours(7) - 30},
	{0, "cct", KindZone, -hours(8)},
	{0, "jst", KindZone, -hours(9)},
	{0, "cast", KindZone, -hours(9) - 30},
	{0, "cadt", KindDaylightZone, -hours(9) - 30},
	{0, "east", KindZone, -hours(10)},
	{0, "eadt", KindDaylightZone, -hours(10)},
	{0, "gst", KindZone, -hours(10)}, // Guam, not Greenland
	{0, "nzt", KindZone, -hours(12)},
	{0, "nzst", KindZone, -hours(12)},
	{0, "nzdt", KindDaylightZone, -hours(12)},
	{0, "idle", KindZone, -hours(12)},

	{0, "dst", KindDST, 0},

	{4, "years", KindMonthUnit, 12},
	{5, "months", KindMonthUnit, 1},
	{9, "fortnights", KindSecondsUnit, 14 * secondsPerDay},
	{4, "weeks", KindSecondsUnit, 7 * secondsPerDay},
	{3, "days", KindSecondsUnit, secondsPerDay},
	{4, "hours", KindSecondsUnit, secondsPerHour},
	{3, "minutes", KindSecondsUnit, secondsPerMinute},
	{3, "seconds", KindSecondsUnit, 1},

	{0, "tomorrow", KindSecondsUnit, secondsPerDay},
	{0, "yesterday", KindSecondsUnit, -secondsPerDay},
	{0, "today", KindSecondsUnit, 0},
	{0, "now", KindSecondsUnit, 0},
	{0, "last", KindNumber, -1},
	{0, "this", KindSecondsUnit, 0},
	{0, "next", KindNumber, 2},
	{0, "first", KindNumber, 1},
	{0, "1st", KindNumber, 1},
	// "second" is left to the seconds unit above.
	{0, "2nd", KindNumber, 2},
	{0, "third", KindNumber, 3},
	{0, "3rd", KindNumber, 3},
	{0, "fourth", KindNumber, 4},
	{0, "4th", KindNumber, 4},
	{0, "fifth", KindNumber, 5},
	{0, "5th", KindNumber, 5},
	{0, "sixth", KindNumber, 6},
	{0, "seventh", KindNumber, 7},
	{0, "eighth", KindNumber, 8},
	{0, "ninth", KindNumber, 9},
	{0, "tenth", KindNumber, 10},
	{0, "eleventh", KindNumber, 11},
	{0, "twelfth", KindNumber, 12},
	{0, "ago", KindAgo, 1},

	// Military zones; there is no "j".
	{0, "a", KindZone, hours(1)},
	{0, "b", KindZone, hours(2)},
	{0, "c", KindZone, hours(3)},
	{0, "d", KindZone, hours(4)},
	{0, "e", KindZone, hours(5)},
	{0, "f", KindZone, hours(6)},
	{0, "g", KindZone, hours(7)},
	{0, "h", KindZone, hours(8)},
	{0, "i", KindZone, hours(9)},
	{0, "k", KindZone, hours(10)},
	{0, "l", KindZone, hours(11)},
	{0, "m", KindZone, hours(12)},
	{0, "n", KindZone, hours(-1)},
	{0, "o", KindZone, hours(-2)},
	{0, "p", KindZone, hours(-3)},
	{0, "q", KindZone, hours(-4)},
	{0, "r", KindZone, hours(-5)},
	{0, "s", KindZone, hours(-6)},
	{0, "t", KindZone, hours(-7)},
	{0, "u", KindZone, hours(-8)},
	{0, "v", KindZone, hours(-9)},
	{0, "w", KindZone, hours(-10)},
	{0, "x", KindZone, hours(-11)},
	{0, "y", KindZone, hours(-12)},
	{0, "z", KindZone, hours(0)},
}

// lookup finds the first table entry that word abbreviates. word must
// already be lower-cased with dots removed.
func lookup(word string) (entry, bool) {
	for _, e := range lexicon {
		n := e.abbrev
		if n == 0 {
			n = len(e.word)
		}
		if len(word) >= n && strings.HasPrefix(e.word, word) {
			return e, true
		}
	}
	return entry{}, false
}
