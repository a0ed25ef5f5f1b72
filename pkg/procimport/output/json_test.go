package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

func sampleResult() *models.ImportResult {
	return &models.ImportResult{
		BatchID:   "batch-1",
		Sheet:     "IMPORTACAO",
		Processos: []models.ProcessRecord{{ProcessoRef: "A1", Itens: []models.ItemRecord{{ItemDescricao: "Resma"}}}},
		Preview: []models.PreviewRow{
			{ProcessoRef: "A1", NumeroProcesso: "001/2024", Ano: "2024", Itens: 1, Entidade: "Prefeitura", Orgao: "—"},
		},
		Warnings: []string{"Colunas ausentes na aba IMPORTACAO: ano."},
		Summary:  models.Summary{Processos: 1, Itens: 1, ValorEstimadoTotal: "0.00"},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	for _, key := range []string{"batch_id", "processos", "fornecedores", "preview", "warnings", "summary"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected key %q in output", key)
		}
	}
	if processos := decoded["processos"].([]interface{}); processos[0].(map[string]interface{})["data_sessao_iso"] != nil {
		t.Errorf("Expected null data_sessao_iso")
	}
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleResult(), true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"batch_id\"") {
		t.Errorf("Expected indented output, got %s", data)
	}
}

func TestWritePreview(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePreview(&buf, sampleResult()); err != nil {
		t.Fatalf("WritePreview failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"A1", "001/2024", "Prefeitura", "Aviso: Colunas ausentes", "1 processo(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
