package models

// PreviewRow is the display projection of one ProcessRecord.
type PreviewRow struct {
	ProcessoRef    string `json:"processo_ref"`
	NumeroProcesso string `json:"numero_processo"`
	Ano            string `json:"ano"`
	// Itens is the number of items in the process.
	Itens int `json:"itens"`
	// Entidade is the entity label shown to the user.
	Entidade string `json:"entidade"`
	// Orgao is the organizational unit label shown to the user.
	Orgao string `json:"orgao"`
}

// Summary holds the counters displayed next to the preview.
type Summary struct {
	Processos    int `json:"processos"`
	Itens        int `json:"itens"`
	Fornecedores int `json:"fornecedores"`
	// ValorEstimadoTotal sums quantity times unit value over items where
	// both parse as numbers. Informational only.
	ValorEstimadoTotal string `json:"valor_estimado_total"`
}

// ImportResult is the output of parsing one uploaded workbook.
type ImportResult struct {
	// BatchID correlates the preview with later reconcile/submit runs.
	BatchID string `json:"batch_id"`
	// Sheet is the resolved name of the import sheet.
	Sheet        string           `json:"sheet"`
	Processos    []ProcessRecord  `json:"processos"`
	Fornecedores []SupplierRecord `json:"fornecedores"`
	Preview      []PreviewRow     `json:"preview"`
	Warnings     []string         `json:"warnings"`
	Summary      Summary          `json:"summary"`
}
