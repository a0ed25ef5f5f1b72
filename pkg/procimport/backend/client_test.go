package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

func TestListSuppliers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"cnpj": "11.111.111/0001-11"}, {"cnpj": "22222222000122", "id": 7}]`},
		{"paginated envelope", `{"count": 2, "next": null, "results": [{"cnpj": "11.111.111/0001-11"}, {"cnpj": "22222222000122"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/fornecedores/", r.URL.Path)
				assert.Equal(t, "1000", r.URL.Query().Get("limit"))
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api/", zap.NewNop(), WithToken("secret"))
			suppliers, err := client.ListSuppliers(context.Background(), 1000)

			require.NoError(t, err)
			require.Len(t, suppliers, 2)
			assert.Equal(t, "11.111.111/0001-11", suppliers[0].CNPJ)
			assert.Equal(t, "22222222000122", suppliers[1].CNPJ)
		})
	}
}

func TestListSuppliersToleratesMixedTypes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			"numeric fields beside a string cnpj",
			`{"results": [{"id": 7, "cnpj": "11.111.111/0001-11", "numero": 120, "ativo": true}]}`,
			[]string{"11.111.111/0001-11"},
		},
		{
			"numeric cnpj",
			`[{"cnpj": 11111111000111, "numero": 120}, {"cnpj": 1234567000189}]`,
			[]string{"11111111000111", "01234567000189"},
		},
		{
			"missing or unusable cnpj is skipped",
			`[{"id": 1}, {"cnpj": null}, {"cnpj": ""}, {"cnpj": {"x": 1}}, "oops", {"cnpj": "22222222000122"}]`,
			[]string{"22222222000122"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			suppliers, err := NewClient(server.URL, zap.NewNop()).ListSuppliers(context.Background(), 10)

			require.NoError(t, err)
			got := make([]string, 0, len(suppliers))
			for _, s := range suppliers {
				got = append(got, s.CNPJ)
				assert.Empty(t, s.RazaoSocial)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestListSuppliersErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, zap.NewNop()).ListSuppliers(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCreateSupplier(t *testing.T) {
	var received models.SupplierRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/fornecedores/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewClient(server.URL+"/api", zap.NewNop()).CreateSupplier(context.Background(),
		models.SupplierRecord{CNPJ: "22222222000122", RazaoSocial: "ACME"})

	require.NoError(t, err)
	assert.Equal(t, "22222222000122", received.CNPJ)
	assert.Equal(t, "ACME", received.RazaoSocial)
}

func TestCreateSupplierRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cnpj": ["já existe"]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewClient(server.URL, zap.NewNop()).CreateSupplier(context.Background(), models.SupplierRecord{CNPJ: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSubmitImport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/processos/importar-xlsx/", r.URL.Path)

		file, header, err := r.FormFile("arquivo")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "processos.xlsx", header.Filename)
		assert.Equal(t, xlsxContentType, header.Header.Get("Content-Type"))
		assert.Equal(t, "original bytes", string(content))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := NewClient(server.URL+"/api/", zap.NewNop()).
		SubmitImport(context.Background(), "processos.xlsx", strings.NewReader("original bytes"))

	require.NoError(t, err)
}

func TestSubmitImportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "coluna ausente"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	err := NewClient(server.URL, zap.NewNop()).
		SubmitImport(context.Background(), "processos.xlsx", strings.NewReader("x"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmitFailed))
	assert.Contains(t, err.Error(), "422")
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		endpoint string
		expected string
	}{
		{"http://localhost:8000/api/", "fornecedores/", "http://localhost:8000/api/fornecedores/"},
		{"http://localhost:8000/api", "fornecedores/", "http://localhost:8000/api/fornecedores/"},
		{"https://example.com", "processos/importar-xlsx/", "https://example.com/processos/importar-xlsx/"},
	}

	for _, tt := range tests {
		got, err := buildURL(tt.base, tt.endpoint, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}
