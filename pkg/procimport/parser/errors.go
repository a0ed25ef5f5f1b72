package parser

import (
	"fmt"
	"strings"
)

// ParseError indicates the uploaded content is not a readable workbook.
type ParseError struct {
	BookName string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse workbook %q: %v", e.BookName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(bookName string, err error) *ParseError {
	return &ParseError{
		BookName: bookName,
		Err:      err,
	}
}

// MissingSheetError indicates no sheet matched the import sheet name.
type MissingSheetError struct {
	Wanted    string
	Available []string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Wanted, strings.Join(e.Available, ", "))
}

// EmptySheetError indicates the import sheet has no data rows.
type EmptySheetError struct {
	Sheet string
}

func (e *EmptySheetError) Error() string {
	return fmt.Sprintf("sheet %q has no data rows", e.Sheet)
}
