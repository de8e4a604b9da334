package getdate

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeap(t *testing.T) {
	tests := map[int64]bool{
		1900: false,
		1996: true,
		2000: true,
		2004: true,
		2023: false,
		2100: false,
		2400: true,
	}
	for year, want := range tests {
		assert.Equal(t, want, isLeap(year), "year %d", year)
	}
}

func TestFullYear(t *testing.T) {
	tests := []struct{ in, want int64 }{
		{0, 2000},
		{4, 2004},
		{50, 2050},
		{68, 2068},
		{69, 1969},
		{75, 1975},
		{99, 1999},
		{100, 100},
		{2004, 2004},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fullYear(tt.in), "year %d", tt.in)
	}
}

func TestDaysSinceEpoch(t *testing.T) {
	dates := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2038, 1, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got := daysSinceEpoch(int64(d.Year()), int64(d.Month()), int64(d.Day()))
		assert.Equal(t, d.Unix()/secondsPerDay, got, "date %s", d.Format(time.DateOnly))
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		c    civil
		zone int64
		mode dstMode
		want time.Time
	}{
		{
			name: "iso date",
			c:    civil{year: 2004, month: 1, day: 29},
			mode: dstMaybe,
			want: time.Date(2004, 1, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "two digit year",
			c:    civil{year: 99, month: 12, day: 31, hour: 23, minute: 59, second: 59},
			mode: dstMaybe,
			want: time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name: "zone west of utc",
			c:    civil{year: 2004, month: 6, day: 1, hour: 10},
			zone: 300,
			mode: dstOff,
			want: time.Date(2004, 6, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "daylight on",
			c:    civil{year: 2004, month: 6, day: 1, hour: 10},
			zone: 300,
			mode: dstOn,
			want: time.Date(2004, 6, 1, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "lower bound",
			c:    civil{year: 1900, month: 1, day: 1},
			mode: dstMaybe,
			want: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "upper bound",
			c:    civil{year: 9999, month: 12, day: 31, hour: 23, minute: 59, second: 59},
			mode: dstMaybe,
			want: time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert(time.UTC, tt.c, tt.zone, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Unix(), got)
		})
	}
}

func TestConvertMaybeDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	summer, err := convert(ny, civil{year: 2024, month: 7, day: 4, hour: 12}, 300, dstMaybe)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 4, 12, 0, 0, 0, ny).Unix(), summer)

	winter, err := convert(ny, civil{year: 2024, month: 1, day: 4, hour: 12}, 300, dstMaybe)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 12, 0, 0, 0, ny).Unix(), winter)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		c    civil
		want error
	}{
		{"year too early", civil{year: 1899, month: 12, day: 31}, ErrCalendarRange},
		{"year too late", civil{year: 10000, month: 1, day: 1}, ErrCalendarRange},
		{"month zero", civil{year: 2004, month: 0, day: 1}, ErrCalendarRange},
		{"month thirteen", civil{year: 2004, month: 13, day: 1}, ErrCalendarRange},
		{"day zero", civil{year: 2004, month: 1, day: 0}, ErrCalendarRange},
		{"april 31", civil{year: 2004, month: 4, day: 31}, ErrCalendarRange},
		{"1900 not leap", civil{year: 1900, month: 2, day: 29}, ErrCalendarRange},
		{"2100 not leap", civil{year: 2100, month: 2, day: 29}, ErrCalendarRange},
		{"hour 24", civil{year: 2004, month: 1, day: 1, hour: 24}, ErrInvalidTimeOfDay},
		{"minute 60", civil{year: 2004, month: 1, day: 1, minute: 60}, ErrInvalidTimeOfDay},
		{"second 60", civil{year: 2004, month: 1, day: 1, second: 60}, ErrInvalidTimeOfDay},
		{"bad date before bad time", civil{year: 2004, month: 2, day: 30, hour: 99}, ErrCalendarRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convert(time.UTC, tt.c, 0, dstMaybe)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, inRange(0))
	assert.True(t, inRange(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Unix()))
	assert.False(t, inRange(time.Date(1899, 12, 31, 23, 59, 59, 0, time.UTC).Unix()))
	assert.True(t, inRange(time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC).Unix()))
	assert.False(t, inRange(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix()))
}
