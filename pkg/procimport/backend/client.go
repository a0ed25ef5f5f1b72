// Package backend provides a client for the procurement backend REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// DefaultTimeout is the maximum time to wait for backend responses.
const DefaultTimeout = 20 * time.Second

const (
	suppliersEndpoint = "fornecedores/"
	importEndpoint    = "processos/importar-xlsx/"
	importField       = "arquivo"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	requestIDHeader   = "X-Request-ID"
)

// ErrSubmitFailed indicates the backend did not accept an import submission.
var ErrSubmitFailed = errors.New("import submission failed")

// Client provides access to the backend API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a backend client for the API rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSuppliers fetches one page of registered suppliers. The endpoint may
// answer with a bare array or with a paginated {"results": [...]} envelope.
// Only the cnpj of each record is read.
func (c *Client) ListSuppliers(ctx context.Context, limit int) ([]models.SupplierRecord, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	endpoint, err := buildURL(c.baseURL, suppliersEndpoint, query)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Listing suppliers", zap.String("url", endpoint), zap.Int("limit", limit))

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	suppliers, err := decodeSupplierList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier registers a supplier.
func (c *Client) CreateSupplier(ctx context.Context, supplier models.SupplierRecord) error {
	endpoint, err := buildURL(c.baseURL, suppliersEndpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	payload, err := json.Marshal(supplier)
	if err != nil {
		return fmt.Errorf("failed to encode supplier: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Creating supplier", zap.String("cnpj", supplier.CNPJ))

	_, err = c.do(req)
	return err
}

// SubmitImport uploads the original workbook bytes as the multipart field
// "arquivo". Every failure wraps ErrSubmitFailed.
func (c *Client) SubmitImport(ctx context.Context, filename string, content io.Reader) error {
	endpoint, err := buildURL(c.baseURL, importEndpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to build URL: %v", ErrSubmitFailed, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(filePartHeader(importField, filename))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("%w: failed to read workbook: %v", ErrSubmitFailed, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Info("Submitting import workbook",
		zap.String("url", endpoint),
		zap.String("filename", filename))

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// do executes a request and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Backend returned error",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.String("request_id", req.Header.Get(requestIDHeader)),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// decodeSupplierList reads only the cnpj of each listed supplier. The field
// may be a string or a number; records where it is absent, null or of any
// other type are skipped rather than failing the page.
func decodeSupplierList(body []byte) ([]models.SupplierRecord, error) {
	var items []json.RawMessage
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		items = envelope.Results
	}

	suppliers := make([]models.SupplierRecord, 0, len(items))
	for _, item := range items {
		var record struct {
			CNPJ json.RawMessage `json:"cnpj"`
		}
		if err := json.Unmarshal(item, &record); err != nil {
			continue
		}
		if cnpj, ok := supplierID(record.CNPJ); ok {
			suppliers = append(suppliers, models.SupplierRecord{CNPJ: cnpj})
		}
	}
	return suppliers, nil
}

// cnpjDigits is the length of a CNPJ without punctuation.
const cnpjDigits = 14

// supplierID extracts a CNPJ from a JSON string or number. Numbers lose
// leading zeros in transit, so they are padded back to cnpjDigits.
func supplierID(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		id := n.String()
		if len(id) < cnpjDigits && strings.Trim(id, "0123456789") == "" {
			id = strings.Repeat("0", cnpjDigits-len(id)) + id
		}
		return id, true
	}
	return "", false
}

func filePartHeader(field, filename string) textproto.MIMEHeader {
	quote := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quote.Replace(field), quote.Replace(filename)))
	h.Set("Content-Type", xlsxContentType)
	return h
}

// buildURL joins endpoint onto the base URL path. A trailing slash on the
// endpoint is kept since the backend routes require it.
func buildURL(baseURL, endpoint string, query url.Values) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	u.Path = path.Join(u.Path, endpoint)
	if strings.HasSuffix(endpoint, "/") {
		u.Path += "/"
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}
