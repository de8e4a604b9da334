package getdate

import (
	"fmt"
	"time"
)

func local(loc *time.Location, sec int64) time.Time {
	return time.Unix(sec, 0).In(loc)
}

// dstCorrect returns future-start, adjusted by the change in local hour
// so that calendar arithmetic across a daylight saving switch lands on
// the same wall-clock hour.
func dstCorrect(loc *time.Location, start, future int64) int64 {
	startHour := int64(local(loc, start).Hour()+1) % 24
	futureHour := int64(local(loc, future).Hour()+1) % 24
	return (future - start) + (startHour-futureHour)*secondsPerHour
}

// relativeDate returns the offset from start to the ordinal-th weekday.
// The first occurrence may be start's own day; an ordinal of zero or
// less counts back whole weeks from that first occurrence.
func relativeDate(loc *time.Location, start, ordinal, weekday int64) int64 {
	wday := int64(local(loc, start).Weekday())
	future := start + secondsPerDay*((weekday-wday+7)%7)
	if ordinal > 0 {
		ordinal--
	}
	future += 7 * secondsPerDay * ordinal
	return dstCorrect(loc, start, future)
}

// relativeMonth returns the offset from start to the same local day and
// time relMonth calendar months later. When the target month is too short
// for that day, clamp moves it to the month's last day; otherwise it is an
// ErrCalendarRange.
func relativeMonth(loc *time.Location, start, relMonth, zone int64, clamp bool) (int64, error) {
	if relMonth == 0 {
		return 0, nil
	}
	tm := local(loc, start)
	month := 12*int64(tm.Year()) + int64(tm.Month()-1) + relMonth
	target := civil{
		year:   month / 12,
		month:  month%12 + 1,
		day:    int64(tm.Day()),
		hour:   int64(tm.Hour()),
		minute: int64(tm.Minute()),
		second: int64(tm.Second()),
	}
	if target.month >= 1 && target.month <= 12 {
		if last := monthDays(target.year, target.month); target.day > last {
			if !clamp {
				return 0, fmt.Errorf("%w: %d-%02d has no day %d (count days instead, or name the date)",
					ErrCalendarRange, target.year, target.month, target.day)
			}
			target.day = last
		}
	}
	future, err := convert(loc, target, zone, dstMaybe)
	if err != nil {
		return 0, err
	}
	return dstCorrect(loc, start, future), nil
}
