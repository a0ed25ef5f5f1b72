package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	// Clear env vars that might interfere with test
	for _, key := range []string{"PROCIMPORT_API_BASE_URL", "PROCIMPORT_SUPPLIER_PAGE_SIZE", "REDIS_URL", "LOG_LEVEL"} {
		os.Unsetenv(key)
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/", cfg.API.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1000, cfg.API.SupplierPageSize)
	assert.Equal(t, "https://brasilapi.com.br/api/cnpj/v1/", cfg.Enrich.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Enrich.CacheTTL)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, "IMPORTACAO", cfg.Import.ImportSheet)
	assert.Equal(t, "FORNECEDORES", cfg.Import.SupplierSheet)
	assert.True(t, cfg.Import.AutoProvision)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procimport.yaml")
	yamlContent := `
api:
  base_url: "https://yaml.example.com/api/"
  supplier_page_size: 200
http:
  addr: ":9000"
log:
  level: "debug"
  format: "console"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	t.Setenv("PROCIMPORT_API_BASE_URL", "https://env.example.com/api/")
	t.Setenv("PROCIMPORT_API_TOKEN", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api/", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 200, cfg.API.SupplierPageSize)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "LOG_LEVEL", "verbose"},
		{"log format", "LOG_FORMAT", "xml"},
		{"page size", "PROCIMPORT_SUPPLIER_PAGE_SIZE", "0"},
		{"base url", "PROCIMPORT_API_BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
