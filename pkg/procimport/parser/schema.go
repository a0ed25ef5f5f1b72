package parser

import (
	"fmt"
	"strings"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

const (
	// DefaultImportSheet is the name of the required process sheet.
	DefaultImportSheet = "IMPORTACAO"
	// DefaultSupplierSheet is the name of the optional supplier sheet.
	DefaultSupplierSheet = "FORNECEDORES"

	// importSheetHint is matched case-insensitively against sheet names
	// when the import sheet is not found by its exact name.
	importSheetHint = "import"
)

// Process-level columns of the import sheet.
const (
	ColProcessoRef        = "processo_ref"
	ColEntidadeID         = "entidade_id"
	ColEntidadeNome       = "entidade_nome"
	ColOrgaoCodigoUnidade = "orgao_codigo_unidade"
	ColOrgaoNome          = "orgao_nome"
	ColNumeroProcesso     = "numero_processo"
	ColAno                = "ano"
	ColObjeto             = "objeto"
	ColModalidade         = "modalidade"
	ColRegistroPrecos     = "registro_precos"
	ColTipoDisputa        = "tipo_disputa"
	ColDataCertame        = "data_certame"
	ColHoraCertame        = "hora_certame"
	ColLocalSessao        = "local_sessao"
	ColObservacoes        = "observacoes"
)

// Item-level columns of the import sheet.
const (
	ColItemOrdem             = "item_ordem"
	ColLote                  = "lote"
	ColItemDescricao         = "item_descricao"
	ColItemEspecificacao     = "item_especificacao"
	ColQuantidade            = "quantidade"
	ColUnidade               = "unidade"
	ColValorUnitarioEstimado = "valor_unitario_estimado"
	ColCategoria             = "categoria"
	ColMarcaPreferencial     = "marca_preferencial"
)

// Supplier sheet columns.
const (
	ColCNPJ         = "cnpj"
	ColRazaoSocial  = "razao_social"
	ColNomeFantasia = "nome_fantasia"
	ColEmail        = "email"
	ColTelefone     = "telefone"
	ColCEP          = "cep"
	ColLogradouro   = "logradouro"
	ColNumero       = "numero"
	ColBairro       = "bairro"
	ColComplemento  = "complemento"
	ColMunicipio    = "municipio"
	ColUF           = "uf"
)

// ProcessColumns lists the process-level columns in template order.
var ProcessColumns = []string{
	ColProcessoRef,
	ColEntidadeID,
	ColEntidadeNome,
	ColOrgaoCodigoUnidade,
	ColOrgaoNome,
	ColNumeroProcesso,
	ColAno,
	ColObjeto,
	ColModalidade,
	ColRegistroPrecos,
	ColTipoDisputa,
	ColDataCertame,
	ColHoraCertame,
	ColLocalSessao,
	ColObservacoes,
}

// ItemColumns lists the item-level columns in template order.
var ItemColumns = []string{
	ColItemOrdem,
	ColLote,
	ColItemDescricao,
	ColItemEspecificacao,
	ColQuantidade,
	ColUnidade,
	ColValorUnitarioEstimado,
	ColCategoria,
	ColMarcaPreferencial,
}

// SupplierColumns lists the supplier sheet columns in template order.
var SupplierColumns = []string{
	ColCNPJ,
	ColRazaoSocial,
	ColNomeFantasia,
	ColEmail,
	ColTelefone,
	ColCEP,
	ColLogradouro,
	ColNumero,
	ColBairro,
	ColComplemento,
	ColMunicipio,
	ColUF,
	ColObservacoes,
}

// RequiredColumns returns process columns followed by item columns.
func RequiredColumns() []string {
	cols := make([]string, 0, len(ProcessColumns)+len(ItemColumns))
	cols = append(cols, ProcessColumns...)
	return append(cols, ItemColumns...)
}

// ResolveImportSheet finds the import sheet by exact name, falling back to
// the first sheet whose name contains "import" in any case. It fails with
// *MissingSheetError when nothing matches and *EmptySheetError when the
// sheet has no data rows.
func ResolveImportSheet(wb *models.Workbook, name string) (models.Sheet, error) {
	sheet, ok := wb.Sheet(name)
	if !ok {
		for _, sheetName := range wb.SheetNames {
			if strings.Contains(strings.ToLower(sheetName), importSheetHint) {
				sheet, ok = wb.Sheet(sheetName)
				break
			}
		}
	}
	if !ok {
		return models.Sheet{}, &MissingSheetError{
			Wanted:    name,
			Available: append([]string(nil), wb.SheetNames...),
		}
	}
	if len(sheet.Rows) == 0 {
		return models.Sheet{}, &EmptySheetError{Sheet: sheet.Name}
	}
	return sheet, nil
}

// FindSheet looks a sheet up by exact name only.
func FindSheet(wb *models.Workbook, name string) (models.Sheet, bool) {
	return wb.Sheet(name)
}

// MissingColumns returns the required columns absent from the sheet header,
// in RequiredColumns order.
func MissingColumns(sheet models.Sheet) []string {
	var missing []string
	for _, col := range RequiredColumns() {
		if !sheet.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// MissingColumnsWarning aggregates missing column names into one warning.
func MissingColumnsWarning(sheetName string, missing []string) string {
	return fmt.Sprintf("Colunas ausentes na aba %s: %s.", sheetName, strings.Join(missing, ", "))
}
