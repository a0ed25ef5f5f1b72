// Package output renders import results for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// ToJSON serializes an import result.
func ToJSON(result *models.ImportResult, pretty bool) ([]byte, error) {
	return marshal(result, pretty)
}

// ReportToJSON serializes any report value, such as a reconciliation report.
func ReportToJSON(v interface{}, pretty bool) ([]byte, error) {
	return marshal(v, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WritePreview prints the preview table followed by warnings and totals.
func WritePreview(w io.Writer, result *models.ImportResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REF\tNÚMERO\tANO\tITENS\tENTIDADE\tÓRGÃO")
	for _, row := range result.Preview {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			row.ProcessoRef, row.NumeroProcesso, row.Ano, row.Itens, row.Entidade, row.Orgao)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Aviso: %s\n", warning)
	}
	_, err := fmt.Fprintf(w, "%d processo(s), %d item(ns), %d fornecedor(es), valor estimado %s\n",
		result.Summary.Processos, result.Summary.Itens, result.Summary.Fornecedores, result.Summary.ValorEstimadoTotal)
	return err
}

// WriteLines prints one line per entry.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
