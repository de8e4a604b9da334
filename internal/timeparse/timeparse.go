package timeparse

import (
	"fmt"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// ParseDuration parses a positive duration with day and week units:
// "30d", "2w", "1d12h", "90m"
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	d, err := str2duration.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (expected formats: 30d, 2w, 1d12h): %w", input, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}

	return d, nil
}

// FormatDuration formats d with day and week units: "1d2h", "3w"
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return str2duration.String(d)
}

// FormatOffset formats the signed distance between two instants, using
// day and week units: "+1d2h", "-3w", "0s"
func FormatOffset(d time.Duration) string {
	switch {
	case d == 0:
		return "0s"
	case d < 0:
		return "-" + FormatDuration(-d)
	}
	return "+" + FormatDuration(d)
}

// Validate checks if a duration string is valid
func Validate(input string) error {
	_, err := ParseDuration(input)
	return err
}
