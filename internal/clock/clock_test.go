package clock

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 17, 0, 0, 0, time.UTC)
	c := Fixed(now, ny)

	assert.True(t, c.Now().Equal(now))
	assert.Equal(t, ny, c.Location())
	assert.Equal(t, 12, c.Now().Hour())
}

func TestFixedNilLocation(t *testing.T) {
	now := time.Date(2024, 3, 6, 17, 0, 0, 0, time.UTC)
	c := Fixed(now, nil)
	assert.Equal(t, time.UTC, c.Location())
}

func TestSystem(t *testing.T) {
	before := time.Now()
	got := System().Now()
	assert.False(t, got.Before(before))
	assert.Equal(t, time.Local, System().Location())
	assert.Equal(t, time.UTC, In(time.UTC).Location())
	assert.Equal(t, time.Local, In(nil).Location())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		want    string
		wantErr bool
	}{
		{"empty is local", "", time.Local.String(), false},
		{"local keyword", "Local", time.Local.String(), false},
		{"iana name", "Europe/Paris", "Europe/Paris", false},
		{"utc", "UTC", "UTC", false},
		{"unknown zone", "Mars/Olympus_Mons", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Load(tt.zone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.String())
		})
	}
}

func TestStandard(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		loc  *time.Location
		west int64
	}{
		{"utc", time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), time.UTC, 0},
		{"new york winter", time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), ny, 300},
		{"new york summer", time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC), ny, 300},
		{"fixed east zone", time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC), time.FixedZone("IST", 5*3600+1800), -330},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.west, Standard(Fixed(tt.now, tt.loc)))
		})
	}
}
