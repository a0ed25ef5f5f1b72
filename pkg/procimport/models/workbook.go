package models

// Workbook represents a loaded workbook with its sheets in workbook order.
type Workbook struct {
	// BookName is the uploaded file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its content.
	Sheets map[string]Sheet `json:"sheets"`
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	s, ok := w.Sheets[name]
	return s, ok
}
