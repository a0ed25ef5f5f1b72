package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

func workbookOf(sheets ...models.Sheet) *models.Workbook {
	wb := &models.Workbook{Sheets: make(map[string]models.Sheet)}
	for _, s := range sheets {
		wb.SheetNames = append(wb.SheetNames, s.Name)
		wb.Sheets[s.Name] = s
	}
	return wb
}

func oneRowSheet(name string) models.Sheet {
	return models.Sheet{
		Name:   name,
		Header: []string{ColProcessoRef},
		Rows:   []models.RawRow{{Index: 1, R: 2, C: map[string]string{ColProcessoRef: "A1"}}},
	}
}

func TestResolveImportSheet(t *testing.T) {
	tests := []struct {
		name     string
		wb       *models.Workbook
		expected string
	}{
		{"exact name", workbookOf(oneRowSheet("Importação antiga"), oneRowSheet("IMPORTACAO")), "IMPORTACAO"},
		{"substring fallback", workbookOf(oneRowSheet("Capa"), oneRowSheet("Planilha de Importação")), "Planilha de Importação"},
		{"case-insensitive fallback", workbookOf(oneRowSheet("IMPORT_2024")), "IMPORT_2024"},
	}

	for _, tt := range tests {
		sheet, err := ResolveImportSheet(tt.wb, DefaultImportSheet)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if sheet.Name != tt.expected {
			t.Errorf("%s: expected sheet %q, got %q", tt.name, tt.expected, sheet.Name)
		}
	}
}

func TestResolveImportSheetMissing(t *testing.T) {
	wb := workbookOf(oneRowSheet("Capa"), oneRowSheet(DefaultSupplierSheet))

	_, err := ResolveImportSheet(wb, DefaultImportSheet)

	var missingErr *MissingSheetError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Expected *MissingSheetError, got %v", err)
	}
	if missingErr.Wanted != DefaultImportSheet {
		t.Errorf("Expected wanted %q, got %q", DefaultImportSheet, missingErr.Wanted)
	}
	if len(missingErr.Available) != 2 {
		t.Errorf("Expected 2 available sheets, got %v", missingErr.Available)
	}
}

func TestResolveImportSheetEmpty(t *testing.T) {
	wb := workbookOf(models.Sheet{Name: DefaultImportSheet, Header: RequiredColumns()})

	_, err := ResolveImportSheet(wb, DefaultImportSheet)

	var emptyErr *EmptySheetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Expected *EmptySheetError, got %v", err)
	}
	if emptyErr.Sheet != DefaultImportSheet {
		t.Errorf("Expected sheet %q, got %q", DefaultImportSheet, emptyErr.Sheet)
	}
}

func TestMissingColumns(t *testing.T) {
	var header []string
	for _, col := range RequiredColumns() {
		if col != ColAno && col != ColMarcaPreferencial {
			header = append(header, col)
		}
	}
	sheet := models.Sheet{Name: DefaultImportSheet, Header: header}

	missing := MissingColumns(sheet)
	if len(missing) != 2 || missing[0] != ColAno || missing[1] != ColMarcaPreferencial {
		t.Fatalf("Expected [ano marca_preferencial], got %v", missing)
	}

	warning := MissingColumnsWarning(sheet.Name, missing)
	if !strings.Contains(warning, "ano") || !strings.Contains(warning, DefaultImportSheet) {
		t.Errorf("Warning does not name the sheet and column: %q", warning)
	}
}

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()
	if len(cols) != len(ProcessColumns)+len(ItemColumns) {
		t.Errorf("Expected %d columns, got %d", len(ProcessColumns)+len(ItemColumns), len(cols))
	}
	if len(ProcessColumns) != 15 || len(ItemColumns) != 9 || len(SupplierColumns) != 13 {
		t.Errorf("Unexpected template sizes: %d/%d/%d", len(ProcessColumns), len(ItemColumns), len(SupplierColumns))
	}
}

func TestFindSheetIsExact(t *testing.T) {
	wb := workbookOf(oneRowSheet("fornecedores"))
	if _, ok := FindSheet(wb, DefaultSupplierSheet); ok {
		t.Error("Expected supplier sheet lookup to be case-sensitive")
	}
}
