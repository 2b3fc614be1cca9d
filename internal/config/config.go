package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RequiredDimensions is the only embedding width the chunk stores accept.
const RequiredDimensions = 1536

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  string
	LogFormat string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	EmbeddingProvider   string
	EmbeddingBaseURL    string
	EmbeddingAPIKey     string
	EmbeddingModel      string
	EmbeddingDimensions int
	EmbeddingBatchSize  int
	EmbeddingRPS        float64

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	FetcherProvider string
	FetcherBaseURL  string
	FetcherAPIKey   string
	FetchCacheTTL   time.Duration

	BlobEndpoint        string
	BlobAccessKeyID     string
	BlobSecretAccessKey string
	BlobBucket          string
	BlobPublicURL       string
	BlobRegion          string
	BlobUseSSL          bool

	IngestConcurrency int
	SummaryTimeout    time.Duration
}

// Load reads configuration from the environment and returns a Config.
//
// A .env file in the current directory or up to five parents is loaded first.
// When CONFIG_FILE names a YAML file of KEY: value pairs, those values fill in
// keys the environment leaves unset. Environment always wins over the file.
func Load() (*Config, error) {
	loadDotEnv()

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	src := source{file: file}

	cfg := &Config{
		APIPort:   src.get("API_PORT", "9000"),
		LogLevel:  strings.ToLower(src.get("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(src.get("LOG_FORMAT", "text")),

		DBDriver:    strings.ToLower(src.get("DB_DRIVER", "sqlite")),
		DBPath:      src.get("DB_PATH", "./data/notebook-ai.db"),
		DatabaseURL: src.get("DATABASE_URL", ""),

		EmbeddingProvider: strings.ToLower(src.get("EMBEDDING_PROVIDER", "http")),
		EmbeddingBaseURL:  src.get("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingAPIKey:   src.get("EMBEDDING_API_KEY", ""),
		EmbeddingModel:    src.get("EMBEDDING_MODEL", "text-embedding-3-small"),

		LLMBaseURL: src.get("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:  src.get("LLM_API_KEY", ""),
		LLMModel:   src.get("LLM_MODEL", "gpt-4o-mini"),

		FetcherProvider: strings.ToLower(src.get("FETCHER_PROVIDER", "exa")),
		FetcherBaseURL:  src.get("FETCHER_BASE_URL", "https://api.exa.ai"),
		FetcherAPIKey:   src.get("FETCHER_API_KEY", ""),

		BlobEndpoint:        src.get("BLOB_ENDPOINT", ""),
		BlobAccessKeyID:     src.get("BLOB_ACCESS_KEY_ID", ""),
		BlobSecretAccessKey: src.get("BLOB_SECRET_ACCESS_KEY", ""),
		BlobBucket:          src.get("BLOB_BUCKET", "sources"),
		BlobPublicURL:       src.get("BLOB_PUBLIC_URL", ""),
		BlobRegion:          src.get("BLOB_REGION", "us-east-1"),
	}

	if cfg.EmbeddingDimensions, err = src.getInt("EMBEDDING_DIMENSIONS", RequiredDimensions); err != nil {
		return nil, err
	}
	if cfg.EmbeddingBatchSize, err = src.getInt("EMBEDDING_BATCH_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.EmbeddingRPS, err = src.getFloat("EMBEDDING_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.IngestConcurrency, err = src.getInt("INGEST_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.FetchCacheTTL, err = src.getDuration("FETCH_CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SummaryTimeout, err = src.getDuration("SUMMARY_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BlobUseSSL, err = src.getBool("BLOB_USE_SSL", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.DBDriver == "sqlite" {
		if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	return cfg, nil
}

// validate rejects settings the process cannot run with. Missing credentials
// are not errors; the affected operations report that setup is needed.
func (c *Config) validate() error {
	if c.EmbeddingDimensions != RequiredDimensions {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be %d, got %d", RequiredDimensions, c.EmbeddingDimensions)
	}
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.EmbeddingProvider {
	case "http", "langchaingo":
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.EmbeddingProvider)
	}
	switch c.FetcherProvider {
	case "exa", "direct":
	default:
		return fmt.Errorf("unknown FETCHER_PROVIDER %q", c.FetcherProvider)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.EmbeddingBatchSize <= 0 {
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be positive")
	}
	if c.IngestConcurrency <= 0 {
		return fmt.Errorf("INGEST_CONCURRENCY must be positive")
	}
	return nil
}

func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func loadFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) (int, error) {
	raw := s.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func (s source) getFloat(key string, defaultValue float64) (float64, error) {
	raw := s.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func (s source) getBool(key string, defaultValue bool) (bool, error) {
	raw := s.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func (s source) getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := s.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
