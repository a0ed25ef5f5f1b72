// Package brasilapi looks up company registry data by CNPJ.
package brasilapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

const (
	// DefaultBaseURL is the public CNPJ lookup endpoint.
	DefaultBaseURL = "https://brasilapi.com.br/api/cnpj/v1/"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second
)

// ErrNotFound indicates the CNPJ is unknown to the registry.
var ErrNotFound = errors.New("cnpj not found")

// Company is the subset of the lookup response used to fill supplier data.
// Any field may be absent.
type Company struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	DDDTelefone1 string `json:"ddd_telefone_1"`
	Email        string `json:"email"`
	CEP          string `json:"cep"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Bairro       string `json:"bairro"`
	Complemento  string `json:"complemento"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
}

// Supplier maps the company onto a supplier record.
func (c Company) Supplier() models.SupplierRecord {
	return models.SupplierRecord{
		CNPJ:         models.CleanCNPJ(c.CNPJ),
		RazaoSocial:  c.RazaoSocial,
		NomeFantasia: c.NomeFantasia,
		Telefone:     c.DDDTelefone1,
		Email:        c.Email,
		CEP:          c.CEP,
		Logradouro:   c.Logradouro,
		Numero:       c.Numero,
		Bairro:       c.Bairro,
		Complemento:  c.Complemento,
		Municipio:    c.Municipio,
		UF:           c.UF,
	}
}

// Client queries the CNPJ registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a registry client. An empty baseURL uses DefaultBaseURL
// and a non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("brasilapi"),
	}
}

// LookupCNPJ fetches registry data for a digits-only CNPJ.
func (c *Client) LookupCNPJ(ctx context.Context, cnpj string) (models.SupplierRecord, error) {
	endpoint := c.baseURL + url.PathEscape(cnpj)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.SupplierRecord{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.SupplierRecord{}, fmt.Errorf("failed to call registry: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SupplierRecord{}, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.SupplierRecord{}, fmt.Errorf("%w: %s", ErrNotFound, cnpj)
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("Registry returned error",
			zap.String("cnpj", cnpj),
			zap.Int("status", resp.StatusCode))
		return models.SupplierRecord{}, fmt.Errorf("registry returned status %d: %s", resp.StatusCode, string(body))
	}

	var company Company
	if err := json.Unmarshal(body, &company); err != nil {
		return models.SupplierRecord{}, fmt.Errorf("failed to parse response: %w", err)
	}

	supplier := company.Supplier()
	if supplier.CNPJ == "" {
		supplier.CNPJ = cnpj
	}
	c.logger.Debug("Looked up CNPJ", zap.String("cnpj", cnpj), zap.String("razao_social", supplier.RazaoSocial))
	return supplier, nil
}
