package parser

import (
	"strconv"
	"strings"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// emptyLabel is shown in the preview when a process has no label value.
const emptyLabel = "—"

// GroupProcesses groups rows by processo_ref, keeping keys in first-seen
// order. Rows without a reference get "ref_<n>", n being the 1-based data
// row index. The first row of a group supplies the process fields; every
// row contributes one item.
func GroupProcesses(rows []models.RawRow) []models.ProcessRecord {
	var processes []models.ProcessRecord
	byRef := make(map[string]int)

	for _, row := range rows {
		ref := ProcessRef(row)
		idx, ok := byRef[ref]
		if !ok {
			processes = append(processes, newProcess(ref, row))
			idx = len(processes) - 1
			byRef[ref] = idx
		}
		processes[idx].Itens = append(processes[idx].Itens, newItem(row))
	}

	return processes
}

// ProcessRef returns the grouping key of a row.
func ProcessRef(row models.RawRow) string {
	if ref := strings.TrimSpace(row.Get(ColProcessoRef)); ref != "" {
		return ref
	}
	return "ref_" + strconv.Itoa(row.Index)
}

func newProcess(ref string, row models.RawRow) models.ProcessRecord {
	field := func(col string) string {
		return strings.TrimSpace(row.Get(col))
	}

	p := models.ProcessRecord{
		ProcessoRef:        ref,
		EntidadeID:         field(ColEntidadeID),
		EntidadeNome:       field(ColEntidadeNome),
		OrgaoCodigoUnidade: field(ColOrgaoCodigoUnidade),
		OrgaoNome:          field(ColOrgaoNome),
		NumeroProcesso:     field(ColNumeroProcesso),
		Ano:                field(ColAno),
		Objeto:             field(ColObjeto),
		Modalidade:         field(ColModalidade),
		RegistroPrecos:     ToBool(row.Get(ColRegistroPrecos)),
		TipoDisputa:        field(ColTipoDisputa),
		LocalSessao:        field(ColLocalSessao),
		Observacoes:        field(ColObservacoes),
	}
	if iso, ok := JoinDateTime(row.Get(ColDataCertame), row.Get(ColHoraCertame)); ok {
		p.DataSessaoISO = &iso
	}
	return p
}

func newItem(row models.RawRow) models.ItemRecord {
	return models.ItemRecord{
		ItemOrdem:             row.Get(ColItemOrdem),
		Lote:                  row.Get(ColLote),
		ItemDescricao:         row.Get(ColItemDescricao),
		ItemEspecificacao:     row.Get(ColItemEspecificacao),
		Quantidade:            row.Get(ColQuantidade),
		Unidade:               row.Get(ColUnidade),
		ValorUnitarioEstimado: row.Get(ColValorUnitarioEstimado),
		Categoria:             row.Get(ColCategoria),
		MarcaPreferencial:     row.Get(ColMarcaPreferencial),
	}
}

// BuildPreview projects each process into one preview row, same order.
func BuildPreview(processes []models.ProcessRecord) []models.PreviewRow {
	preview := make([]models.PreviewRow, 0, len(processes))
	for _, p := range processes {
		preview = append(preview, models.PreviewRow{
			ProcessoRef:    p.ProcessoRef,
			NumeroProcesso: p.NumeroProcesso,
			Ano:            p.Ano,
			Itens:          len(p.Itens),
			Entidade:       label(p.EntidadeNome, p.EntidadeID),
			Orgao:          label(p.OrgaoNome, p.OrgaoCodigoUnidade),
		})
	}
	return preview
}

func label(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return emptyLabel
}

// ReadSuppliers maps every row of the supplier sheet to a SupplierRecord.
// Deduplication is left to the reconciler.
func ReadSuppliers(sheet models.Sheet) []models.SupplierRecord {
	suppliers := make([]models.SupplierRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		field := func(col string) string {
			return strings.TrimSpace(row.Get(col))
		}
		suppliers = append(suppliers, models.SupplierRecord{
			CNPJ:         field(ColCNPJ),
			RazaoSocial:  field(ColRazaoSocial),
			NomeFantasia: field(ColNomeFantasia),
			Email:        field(ColEmail),
			Telefone:     field(ColTelefone),
			CEP:          field(ColCEP),
			Logradouro:   field(ColLogradouro),
			Numero:       field(ColNumero),
			Bairro:       field(ColBairro),
			Complemento:  field(ColComplemento),
			Municipio:    field(ColMunicipio),
			UF:           field(ColUF),
			Observacoes:  field(ColObservacoes),
		})
	}
	return suppliers
}
