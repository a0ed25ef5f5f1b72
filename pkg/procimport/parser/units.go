// Package parser provides the workbook loading, validation and grouping
// stages of the import pipeline.
package parser

import "math"

// MinutesPerDay is the number of minutes in one spreadsheet day.
// Spreadsheets store a time of day as a fraction of a day, so 0.5 is noon:
// 0.5 * 1440 = 720 minutes = 12:00.
const MinutesPerDay = 24 * 60

// maxClockFraction bounds fractional-day times; anything larger cannot
// produce a representable instant anyway.
const maxClockFraction = 1e7

// isoLayout renders instants the way the backend expects them
// (millisecond precision, literal Z).
const isoLayout = "2006-01-02T15:04:05.000Z"

// FractionToClock converts a fraction of a day to hour and minute, rounding
// to the nearest minute (halves round up). Hours are not wrapped at 24.
// The hour is floored while the minute keeps the sign of the total, so a
// negative fraction yields a negative minute.
func FractionToClock(fraction float64) (hour, minute int) {
	total := math.Floor(fraction*MinutesPerDay + 0.5)
	return int(math.Floor(total / 60)), int(total - math.Trunc(total/60)*60)
}
