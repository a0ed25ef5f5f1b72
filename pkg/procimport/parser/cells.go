package parser

import (
	"bytes"
	"strings"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook parses raw xlsx content into its sheets.
// Unreadable content yields a *ParseError; a sheet that cannot be read is
// kept with no rows.
func LoadWorkbook(data []byte, bookName string) (*models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewParseError(bookName, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	wb := &models.Workbook{
		BookName:   bookName,
		SheetNames: sheetList,
		Sheets:     make(map[string]models.Sheet, len(sheetList)),
	}

	for _, sheetName := range sheetList {
		sheet, err := ReadSheet(f, sheetName)
		if err != nil {
			sheet = models.Sheet{Name: sheetName}
		}
		wb.Sheets[sheetName] = sheet
	}

	return wb, nil
}

// ReadSheet reads one sheet using raw cell values, so dates and times keep
// their serial-number form instead of a display format.
func ReadSheet(f *excelize.File, sheetName string) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Sheet{Name: sheetName}, err
	}
	return buildSheet(sheetName, rows), nil
}

// buildSheet maps the rows below the first non-blank row to that row's
// header names. Missing cells become "" and fully blank rows are skipped.
func buildSheet(sheetName string, rows [][]string) models.Sheet {
	sheet := models.Sheet{Name: sheetName}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return sheet
	}

	columns := headerColumns(rows[headerIdx])
	for _, col := range columns {
		sheet.Header = append(sheet.Header, col.name)
	}

	dataIdx := 0
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		raw := models.RawRow{
			R: rowIdx + 1,
			C: make(map[string]string, len(columns)),
		}
		for _, col := range columns {
			value := ""
			if col.index < len(row) {
				value = row[col.index]
			}
			raw.C[col.name] = value
		}

		if raw.IsBlank() {
			continue
		}
		dataIdx++
		raw.Index = dataIdx
		sheet.Rows = append(sheet.Rows, raw)
	}

	return sheet
}

type headerColumn struct {
	name  string
	index int
}

// headerColumns returns the named columns of a header row. Blank header
// cells are dropped and a repeated name keeps its first position.
func headerColumns(row []string) []headerColumn {
	var columns []headerColumn
	seen := make(map[string]bool, len(row))
	for colIdx, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, headerColumn{name: name, index: colIdx})
	}
	return columns
}
