package parser

import (
	"testing"
)

func TestToBool(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		input    string
		expected *bool
	}{
		{"SIM", &yes},
		{"s", &yes},
		{" True ", &yes},
		{"1", &yes},
		{"yes", &yes},
		{"não", &no},
		{"NÃO", &no},
		{"nao", &no},
		{"N", &no},
		{"false", &no},
		{"0", &no},
		{"no", &no},
		{"", nil},
		{"talvez", nil},
	}

	for _, tt := range tests {
		result := ToBool(tt.input)
		switch {
		case tt.expected == nil && result != nil:
			t.Errorf("ToBool(%q) = %v, expected nil", tt.input, *result)
		case tt.expected != nil && result == nil:
			t.Errorf("ToBool(%q) = nil, expected %v", tt.input, *tt.expected)
		case tt.expected != nil && *result != *tt.expected:
			t.Errorf("ToBool(%q) = %v, expected %v", tt.input, *result, *tt.expected)
		}
	}
}

func TestJoinDateTime(t *testing.T) {
	tests := []struct {
		date     string
		clock    string
		expected string
		ok       bool
	}{
		{"2024-03-10", "14:30", "2024-03-10T14:30:00.000Z", true},
		{"2024-03-10", "", "2024-03-10T00:00:00.000Z", true},
		{"", "14:30", "", false},
		{"", "", "", false},
		{"not-a-date", "14:30", "", false},
		// Fractional day from the spreadsheet.
		{"2024-03-10", "0.5", "2024-03-10T12:00:00.000Z", true},
		{"2024-03-10", "0.604166666666667", "2024-03-10T14:30:00.000Z", true},
		// Serial date numbers.
		{"45361", "14:30", "2024-03-10T14:30:00.000Z", true},
		{"45361.75", "", "2024-03-10T00:00:00.000Z", true},
		// Day-first dates.
		{"10/03/2024", "09:05", "2024-03-10T09:05:00.000Z", true},
		{"10-03-2024", "", "2024-03-10T00:00:00.000Z", true},
		// Only the calendar date of a timestamp is used.
		{"2024-03-10T23:59:00Z", "08:00", "2024-03-10T08:00:00.000Z", true},
		// Seconds are ignored, overflow rolls into the next day.
		{"2024-03-10", "14:30:59", "2024-03-10T14:30:00.000Z", true},
		{"2024-03-10", "25:00", "2024-03-11T01:00:00.000Z", true},
		// Unreadable clock parts void the result; other text means midnight.
		{"2024-03-10", "aa:10", "", false},
		{"2024-03-10", "tarde", "2024-03-10T00:00:00.000Z", true},
		{"-1", "", "", false},
		// Negative fractions: floored hour, truncated minute.
		{"2024-03-10", "-0.3", "2024-03-09T15:48:00.000Z", true},
	}

	for _, tt := range tests {
		result, ok := JoinDateTime(tt.date, tt.clock)
		if ok != tt.ok || result != tt.expected {
			t.Errorf("JoinDateTime(%q, %q) = (%q, %v), expected (%q, %v)",
				tt.date, tt.clock, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestFractionToClock(t *testing.T) {
	tests := []struct {
		fraction float64
		hour     int
		minute   int
	}{
		{0, 0, 0},
		{0.5, 12, 0},
		{0.25, 6, 0},
		{0.999, 23, 59},
		{1.5, 36, 0},
		{1.0 / MinutesPerDay, 0, 1},
		{0.0104, 0, 15},
		{-0.3, -8, -12},
		{-1.0 / MinutesPerDay, -1, -1},
	}

	for _, tt := range tests {
		h, m := FractionToClock(tt.fraction)
		if h != tt.hour || m != tt.minute {
			t.Errorf("FractionToClock(%v) = %d:%d, expected %d:%d", tt.fraction, h, m, tt.hour, tt.minute)
		}
	}
}
