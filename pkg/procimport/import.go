package procimport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/parser"
)

// ReadFile reads an .xlsx file from disk, rejecting other extensions.
func ReadFile(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ParseFile reads and parses an .xlsx file.
func ParseFile(path string, opts Options) (*models.ImportResult, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Base(path), opts)
}

// Parse loads, validates and groups a workbook into an import batch.
// A missing or empty import sheet and unreadable content are fatal; missing
// columns only produce a warning.
func Parse(data []byte, bookName string, opts Options) (*models.ImportResult, error) {
	wb, err := parser.LoadWorkbook(data, bookName)
	if err != nil {
		return nil, err
	}

	sheet, err := parser.ResolveImportSheet(wb, opts.importSheet())
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	if missing := parser.MissingColumns(sheet); len(missing) > 0 {
		warnings = append(warnings, parser.MissingColumnsWarning(sheet.Name, missing))
	}

	processes := parser.GroupProcesses(sheet.Rows)

	suppliers := []models.SupplierRecord{}
	if supplierSheet, ok := parser.FindSheet(wb, opts.supplierSheet()); ok {
		suppliers = parser.ReadSuppliers(supplierSheet)
	}

	return &models.ImportResult{
		BatchID:      uuid.NewString(),
		Sheet:        sheet.Name,
		Processos:    processes,
		Fornecedores: suppliers,
		Preview:      parser.BuildPreview(processes),
		Warnings:     warnings,
		Summary:      parser.Summarize(processes, suppliers),
	}, nil
}
