// Package models defines data structures for the procurement import pipeline.
package models

// RawRow represents a single data row of a sheet keyed by header name.
type RawRow struct {
	// Index is the 1-based position of the row among the sheet's data rows.
	Index int `json:"index"`
	// R is the worksheet row number (1-based), used in messages.
	R int `json:"r"`
	// C maps header name to cell value. Every header has a key.
	C map[string]string `json:"c"`
}

// Get returns the value under column, or "" when the column is absent.
func (r RawRow) Get(column string) string {
	return r.C[column]
}

// IsBlank reports whether every cell of the row is empty.
func (r RawRow) IsBlank() bool {
	for _, v := range r.C {
		if v != "" {
			return false
		}
	}
	return true
}
