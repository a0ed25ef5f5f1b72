package procimport

import (
	"errors"
	"fmt"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not an .xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ParseError indicates the content could not be read as a workbook.
type ParseError = parser.ParseError

// MissingSheetError indicates the import sheet is absent.
type MissingSheetError = parser.MissingSheetError

// EmptySheetError indicates the import sheet has no data rows.
type EmptySheetError = parser.EmptySheetError

// UserMessage returns the message shown to the user for a failed parse.
func UserMessage(err error) string {
	var (
		missingErr *MissingSheetError
		emptyErr   *EmptySheetError
	)
	switch {
	case errors.As(err, &missingErr):
		return fmt.Sprintf("Aba %q não encontrada no arquivo.", missingErr.Wanted)
	case errors.As(err, &emptyErr):
		return fmt.Sprintf("A aba %q está vazia.", emptyErr.Sheet)
	case errors.Is(err, ErrInvalidFormat):
		return "Envie um arquivo .xlsx."
	case errors.Is(err, ErrFileNotFound):
		return "Arquivo não encontrado."
	default:
		return "Falha ao ler a planilha. Verifique o arquivo."
	}
}
