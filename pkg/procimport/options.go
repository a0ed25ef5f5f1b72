// Package procimport parses procurement process workbooks into a
// previewable import batch.
package procimport

import "github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/parser"

// Options configures parsing behavior.
type Options struct {
	// ImportSheet is the exact name of the process sheet. Sheets whose name
	// contains "import" are used when no sheet has this name.
	ImportSheet string
	// SupplierSheet is the exact name of the optional supplier sheet.
	SupplierSheet string
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{
		ImportSheet:   parser.DefaultImportSheet,
		SupplierSheet: parser.DefaultSupplierSheet,
	}
}

// importSheet returns the process sheet name, defaulting when unset.
func (o Options) importSheet() string {
	if o.ImportSheet != "" {
		return o.ImportSheet
	}
	return parser.DefaultImportSheet
}

// supplierSheet returns the supplier sheet name, defaulting when unset.
func (o Options) supplierSheet() string {
	if o.SupplierSheet != "" {
		return o.SupplierSheet
	}
	return parser.DefaultSupplierSheet
}
