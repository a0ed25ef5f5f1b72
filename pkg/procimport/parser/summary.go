package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// Summarize counts processes, items and suppliers and estimates the batch
// value. Items whose quantity or unit value is not a number are left out of
// the total.
func Summarize(processes []models.ProcessRecord, suppliers []models.SupplierRecord) models.Summary {
	total := decimal.Zero
	items := 0
	for _, p := range processes {
		items += len(p.Itens)
		for _, it := range p.Itens {
			qty, ok := ParseAmount(it.Quantidade)
			if !ok {
				continue
			}
			unit, ok := ParseAmount(it.ValorUnitarioEstimado)
			if !ok {
				continue
			}
			total = total.Add(qty.Mul(unit))
		}
	}

	return models.Summary{
		Processos:          len(processes),
		Itens:              items,
		Fornecedores:       len(suppliers),
		ValorEstimadoTotal: total.StringFixed(2),
	}
}

// ParseAmount reads a plain number ("1234.5") or a Brazilian formatted
// amount ("R$ 1.234,50").
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
