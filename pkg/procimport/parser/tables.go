package parser

import "strings"

// findHeaderRow returns the index of the first row holding any non-blank
// cell, or -1 when the sheet is blank.
func findHeaderRow(rows [][]string) int {
	for rowIdx, row := range rows {
		if countNonEmptyCells(row) > 0 {
			return rowIdx
		}
	}
	return -1
}

// countNonEmptyCells counts cells that hold more than whitespace.
func countNonEmptyCells(row []string) int {
	count := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			count++
		}
	}
	return count
}
