package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "LEXINDEX"

// EnvConfig holds all environment-based configuration.
// Variables carry the LEXINDEX_ prefix; nested structs use underscore
// delimiters (e.g. LEXINDEX_EMBEDDING_BASE_URL).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: LEXINDEX_DATA_DIR (default: ~/.lexindex)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: LEXINDEX_DB_URL (default: sqlite:///{data_dir}/lexindex.db)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity: DEBUG, INFO, WARN, ERROR.
	// Env: LEXINDEX_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format: pretty or json.
	// Env: LEXINDEX_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// TaxonomyPath points at a YAML taxonomy override.
	// Env: LEXINDEX_TAXONOMY_PATH
	TaxonomyPath string `envconfig:"TAXONOMY_PATH"`

	// Embedding configures the embedding endpoint.
	Embedding EmbeddingEnv `envconfig:"EMBEDDING"`

	// BatchSize is the number of articles per embedding batch.
	// Env: LEXINDEX_BATCH_SIZE (default: 50)
	BatchSize int `envconfig:"BATCH_SIZE" default:"50"`

	// WorkerCount is the intra-batch embedding parallelism.
	// Env: LEXINDEX_WORKER_COUNT (default: 4)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"4"`

	// SearchLimit is the default number of search results.
	// Env: LEXINDEX_SEARCH_LIMIT (default: 10)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"10"`

	// MinSimilarity is the default minimum similarity threshold.
	// Env: LEXINDEX_MIN_SIMILARITY (default: 0)
	MinSimilarity float64 `envconfig:"MIN_SIMILARITY" default:"0"`
}

// EmbeddingEnv holds environment configuration for the embedding endpoint.
type EmbeddingEnv struct {
	// BaseURL is the OpenAI-compatible endpoint base URL.
	// Env: LEXINDEX_EMBEDDING_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// APIKey authenticates against the endpoint.
	// Env: LEXINDEX_EMBEDDING_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Model is the embedding model identifier.
	// Env: LEXINDEX_EMBEDDING_MODEL (default: text-embedding-3-small)
	Model string `envconfig:"MODEL" default:"text-embedding-3-small"`

	// Dimension is the declared output dimensionality.
	// Env: LEXINDEX_EMBEDDING_DIMENSION (default: 1536)
	Dimension int `envconfig:"DIMENSION" default:"1536"`

	// MaxInputChars caps the text length sent to the model.
	// Env: LEXINDEX_EMBEDDING_MAX_INPUT_CHARS (default: 5000)
	MaxInputChars int `envconfig:"MAX_INPUT_CHARS" default:"5000"`

	// TimeoutSeconds is the request timeout.
	// Env: LEXINDEX_EMBEDDING_TIMEOUT_SECONDS (default: 60)
	TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS" default:"60"`

	// MaxRetries is the retry count for transient failures.
	// Env: LEXINDEX_EMBEDDING_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`
}

// LoadEnv reads configuration from the environment.
func LoadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("process environment: %w", err)
	}
	return env, nil
}

// ToAppConfig converts environment configuration into an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	embedding := NewEmbeddingWithOptions(
		WithBaseURL(e.Embedding.BaseURL),
		WithAPIKey(e.Embedding.APIKey),
		WithModel(e.Embedding.Model),
		WithDimension(e.Embedding.Dimension),
		WithMaxInputChars(e.Embedding.MaxInputChars),
		WithTimeout(time.Duration(e.Embedding.TimeoutSeconds)*time.Second),
		WithMaxRetries(e.Embedding.MaxRetries),
	)

	opts := []AppConfigOption{
		WithDBURL(e.DBURL),
		WithLogLevel(e.LogLevel),
		WithLogFormat(e.LogFormat),
		WithTaxonomyPath(e.TaxonomyPath),
		WithEmbedding(embedding),
		WithBatchSize(e.BatchSize),
		WithWorkerCount(e.WorkerCount),
		WithSearchLimit(e.SearchLimit),
		WithMinSimilarity(e.MinSimilarity),
	}
	if e.DataDir != "" {
		// Data dir first so an explicit DB URL still wins.
		opts = append([]AppConfigOption{WithDataDir(e.DataDir)}, opts...)
	}

	return NewAppConfigWithOptions(opts...)
}

// LoadConfig loads configuration from an optional .env file and the
// environment.
func LoadConfig(envFile string) (AppConfig, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return AppConfig{}, fmt.Errorf("load env file: %w", err)
	}
	env, err := LoadEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return env.ToAppConfig(), nil
}
