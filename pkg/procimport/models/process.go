package models

// ProcessRecord represents one procurement process assembled from one or
// more rows sharing a processo_ref.
type ProcessRecord struct {
	// ProcessoRef is the grouping key, unique within one import.
	ProcessoRef string `json:"processo_ref"`
	// EntidadeID is the entity identifier.
	EntidadeID string `json:"entidade_id"`
	// EntidadeNome is the entity name.
	EntidadeNome string `json:"entidade_nome"`
	// OrgaoCodigoUnidade is the organizational unit code.
	OrgaoCodigoUnidade string `json:"orgao_codigo_unidade"`
	// OrgaoNome is the organizational unit name.
	OrgaoNome string `json:"orgao_nome"`
	// NumeroProcesso is the process number.
	NumeroProcesso string `json:"numero_processo"`
	// Ano is the process year.
	Ano string `json:"ano"`
	// Objeto is the object description.
	Objeto string `json:"objeto"`
	// Modalidade is the procurement modality.
	Modalidade string `json:"modalidade"`
	// RegistroPrecos is nil when the sheet value is unknown.
	RegistroPrecos *bool `json:"registro_precos,omitempty"`
	// TipoDisputa is the dispute type.
	TipoDisputa string `json:"tipo_disputa"`
	// DataSessaoISO is the session instant in ISO-8601 UTC, nil when absent.
	DataSessaoISO *string `json:"data_sessao_iso"`
	// LocalSessao is the session location.
	LocalSessao string `json:"local_sessao"`
	// Observacoes holds free-text observations.
	Observacoes string `json:"observacoes"`
	// Itens lists the line items in row order.
	Itens []ItemRecord `json:"itens"`
}

// ItemRecord represents one procurement line item. Values are passed
// through as read; numeric coercion belongs to the backend.
type ItemRecord struct {
	ItemOrdem             string `json:"item_ordem"`
	Lote                  string `json:"lote"`
	ItemDescricao         string `json:"item_descricao"`
	ItemEspecificacao     string `json:"item_especificacao"`
	Quantidade            string `json:"quantidade"`
	Unidade               string `json:"unidade"`
	ValorUnitarioEstimado string `json:"valor_unitario_estimado"`
	Categoria             string `json:"categoria"`
	MarcaPreferencial     string `json:"marca_preferencial"`
}
