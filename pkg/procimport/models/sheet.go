package models

// Sheet represents the tabular content of a single worksheet.
type Sheet struct {
	// Name is the worksheet name as stored in the workbook.
	Name string `json:"name"`
	// Header lists the column names in positional order.
	Header []string `json:"header"`
	// Rows contains the data rows below the header.
	Rows []RawRow `json:"rows,omitempty"`
}

// HasColumn reports whether the header contains column.
func (s Sheet) HasColumn(column string) bool {
	for _, h := range s.Header {
		if h == column {
			return true
		}
	}
	return false
}
