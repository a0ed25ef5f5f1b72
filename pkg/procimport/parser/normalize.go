package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	trueWords  = map[string]bool{"sim": true, "s": true, "true": true, "1": true, "yes": true}
	falseWords = map[string]bool{"nao": true, "não": true, "n": true, "false": true, "0": true, "no": true}
)

// dateLayouts are tried in order after the serial-number form. Slash and
// dash day-first forms follow the Brazilian convention.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
}

// ToBool maps a yes/no cell to a tri-state value: true, false, or nil when
// the value is blank or not recognized.
func ToBool(v string) *bool {
	s := strings.ToLower(strings.TrimSpace(v))
	switch {
	case trueWords[s]:
		b := true
		return &b
	case falseWords[s]:
		b := false
		return &b
	}
	return nil
}

// JoinDateTime combines a date cell and an optional time cell into an
// ISO-8601 UTC instant. ok is false when both cells are blank, when the date
// cannot be read, or when the time holds non-numeric "HH:MM" parts.
//
// The time may be "HH:MM" or a fraction of a day (0.5 is 12:00). A blank
// time yields midnight; any other text is also read as midnight.
func JoinDateTime(date, clock string) (iso string, ok bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" && clock == "" {
		return "", false
	}

	day, ok := ParseDate(date)
	if !ok {
		return "", false
	}

	hour, minute, ok := parseClock(clock)
	if !ok {
		return "", false
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
	if t.Year() < 0 || t.Year() > 9999 {
		return "", false
	}
	return t.Format(isoLayout), true
}

// ParseDate reads a calendar date from a cell. Only the date part of the
// result is meaningful.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || math.IsInf(serial, 0) || math.IsNaN(serial) {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseClock reads hour and minute from a time cell.
func parseClock(s string) (hour, minute int, ok bool) {
	if s == "" {
		return 0, 0, true
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		h, ok := clockPart(parts[0])
		if !ok {
			return 0, 0, false
		}
		m, ok := clockPart(parts[1])
		if !ok {
			return 0, 0, false
		}
		return h, m, true
	}

	if fraction, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(fraction) || math.Abs(fraction) > maxClockFraction {
			return 0, 0, false
		}
		hour, minute = FractionToClock(fraction)
		return hour, minute, true
	}

	return 0, 0, true
}

// clockPart reads one "HH:MM" component; blank counts as zero and
// fractions are truncated.
func clockPart(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxClockFraction {
		return 0, false
	}
	return int(v), true
}
