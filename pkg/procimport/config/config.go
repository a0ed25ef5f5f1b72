// Package config loads procimport settings from an optional YAML file and
// the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for procimport.
// Environment variables override YAML values. The API token must come from
// the environment.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Enrich EnrichConfig `yaml:"enrich"`
	Redis  RedisConfig  `yaml:"redis"`
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
	Import ImportConfig `yaml:"import"`
}

// APIConfig holds the procurement backend settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"PROCIMPORT_API_BASE_URL" env-default:"http://localhost:8000/api/" validate:"required,url"`
	Token   string        `yaml:"-" env:"PROCIMPORT_API_TOKEN"` // Secret - not in YAML
	Timeout time.Duration `yaml:"timeout" env:"PROCIMPORT_API_TIMEOUT" env-default:"20s" validate:"gt=0"`
	// SupplierPageSize bounds the existing-supplier listing fetched per
	// reconciliation pass.
	SupplierPageSize int `yaml:"supplier_page_size" env:"PROCIMPORT_SUPPLIER_PAGE_SIZE" env-default:"1000" validate:"gte=1,lte=10000"`
}

// EnrichConfig holds the CNPJ registry settings.
type EnrichConfig struct {
	BaseURL  string        `yaml:"base_url" env:"PROCIMPORT_ENRICH_BASE_URL" env-default:"https://brasilapi.com.br/api/cnpj/v1/" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" env:"PROCIMPORT_ENRICH_TIMEOUT" env-default:"10s" validate:"gt=0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"PROCIMPORT_ENRICH_CACHE_TTL" env-default:"24h" validate:"gt=0"`
}

// RedisConfig enables the lookup cache when URL is set.
type RedisConfig struct {
	URL string `yaml:"-" env:"REDIS_URL" validate:"omitempty,url"` // May carry a password
}

// Enabled reports whether a redis server is configured.
func (c *RedisConfig) Enabled() bool {
	return c.URL != ""
}

// HTTPConfig holds the HTTP server settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr" env:"PROCIMPORT_HTTP_ADDR" env-default:":8080" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" env:"PROCIMPORT_MAX_UPLOAD_BYTES" env-default:"10485760" validate:"gt=0"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json console"`
}

// ImportConfig holds workbook layout settings.
type ImportConfig struct {
	ImportSheet   string `yaml:"import_sheet" env:"PROCIMPORT_IMPORT_SHEET" env-default:"IMPORTACAO" validate:"required"`
	SupplierSheet string `yaml:"supplier_sheet" env:"PROCIMPORT_SUPPLIER_SHEET" env-default:"FORNECEDORES" validate:"required"`
	AutoProvision bool   `yaml:"auto_provision" env:"PROCIMPORT_AUTO_PROVISION" env-default:"true"`
}

// Load reads configuration. A .env file in the working directory is loaded
// first when present; path names an optional YAML file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
