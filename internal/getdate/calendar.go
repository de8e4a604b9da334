package getdate

import (
	"fmt"
	"time"
)

// Years accepted by the calendar converter. The range is what time.Time
// and int64 seconds represent exactly; two-digit years are mapped into it
// before checking.
const (
	MinYear = 1900
	MaxYear = 9999
)

// daysBeforeEpoch counts days from 0001-01-01 to 1970-01-01.
const daysBeforeEpoch = 719162

var daysInMonth = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func monthDays(year, month int64) int64 {
	if month == 2 && isLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// fullYear maps 0..68 to 2000..2068 and 69..99 to 1969..1999.
func fullYear(year int64) int64 {
	switch {
	case year < 69:
		return year + 2000
	case year < 100:
		return year + 1900
	}
	return year
}

// daysSinceEpoch returns the proleptic Gregorian day number of a valid
// date, counted from 1970-01-01.
func daysSinceEpoch(year, month, day int64) int64 {
	y := year - 1
	days := y*365 + y/4 - y/100 + y/400 - daysBeforeEpoch
	for m := int64(1); m < month; m++ {
		days += monthDays(year, m)
	}
	return days + day - 1
}

func timeOfDay(hour, minute, second int64) (int64, error) {
	if minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeOfDay, hour, minute, second)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d", ErrInvalidTimeOfDay, hour)
	}
	return (hour*60+minute)*60 + second, nil
}

// convert turns wall-clock fields in a zone given as minutes west of UTC
// into Unix seconds. With dstMaybe, loc decides whether the result falls
// in daylight time.
func convert(loc *time.Location, c civil, zone int64, mode dstMode) (int64, error) {
	year := fullYear(c.year)
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: year %d", ErrCalendarRange, year)
	}
	if c.month < 1 || c.month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrCalendarRange, c.month)
	}
	if c.day < 1 || c.day > monthDays(year, c.month) {
		return 0, fmt.Errorf("%w: day %d of %d-%02d", ErrCalendarRange, c.day, year, c.month)
	}

	sec := daysSinceEpoch(year, c.month, c.day) * secondsPerDay
	sec += zone * secondsPerMinute
	tod, err := timeOfDay(c.hour, c.minute, c.second)
	if err != nil {
		return 0, err
	}
	sec += tod
	if mode == dstOn || (mode == dstMaybe && time.Unix(sec, 0).In(loc).IsDST()) {
		sec -= secondsPerHour
	}
	return sec, nil
}

// inRange reports whether sec falls within MinYear..MaxYear in UTC.
func inRange(sec int64) bool {
	lo := daysSinceEpoch(MinYear, 1, 1) * secondsPerDay
	hi := (daysSinceEpoch(MaxYear, 12, 31) + 1) * secondsPerDay
	return lo <= sec && sec < hi
}
