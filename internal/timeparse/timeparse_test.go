package timeparse

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      time.Duration
		expectedError bool
	}{
		{"days", "30d", 30 * 24 * time.Hour, false},
		{"weeks", "2w", 14 * 24 * time.Hour, false},
		{"days and hours", "1d12h", 36 * time.Hour, false},
		{"minutes", "90m", 90 * time.Minute, false},
		{"surrounding whitespace", "  7d ", 7 * 24 * time.Hour, false},
		{"empty string", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"invalid format", "abc", 0, true},
		{"negative", "-2h", 0, true},
		{"zero", "0d", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDuration(tt.input)

			if tt.expectedError {
				if err == nil {
					t.Errorf("expected error for input %q, got none", tt.input)
				}
				if Validate(tt.input) == nil {
					t.Errorf("expected Validate to reject %q", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
				return
			}

			if result != tt.expected {
				t.Errorf("for input %q: expected %s, got %s", tt.input, tt.expected, result)
			}
		})
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		offset   time.Duration
		expected string
	}{
		{0, "0s"},
		{90 * time.Minute, "+1h30m"},
		{26 * time.Hour, "+1d2h"},
		{-21 * 24 * time.Hour, "-3w"},
		{-5 * time.Second, "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatOffset(tt.offset)
			if result != tt.expected {
				t.Errorf("FormatOffset(%s): expected %q, got %q", tt.offset, tt.expected, result)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(30 * 24 * time.Hour); got != "4w2d" {
		t.Errorf("expected 4w2d, got %q", got)
	}
	if got := FormatDuration(0); got != "0s" {
		t.Errorf("expected 0s, got %q", got)
	}
}
