// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel          = "INFO"
	DefaultEmbeddingModel    = "text-embedding-3-small"
	DefaultEmbeddingDim      = 1536
	DefaultMaxInputChars     = 5000
	DefaultBatchSize         = 50
	DefaultWorkerCount       = 4
	DefaultSearchLimit       = 10
	DefaultMinSimilarity     = 0.0
	DefaultEndpointTimeout   = 60 * time.Second
	DefaultEndpointRetries   = 3
	DefaultEndpointDelay     = 2 * time.Second
	DefaultEndpointBackoff   = 2.0
)

// Embedding configures the embedding endpoint and vector shape.
type Embedding struct {
	baseURL       string
	apiKey        string
	model         string
	dimension     int
	maxInputChars int
	timeout       time.Duration
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewEmbedding creates an Embedding config with defaults.
func NewEmbedding() Embedding {
	return Embedding{
		model:         DefaultEmbeddingModel,
		dimension:     DefaultEmbeddingDim,
		maxInputChars: DefaultMaxInputChars,
		timeout:       DefaultEndpointTimeout,
		maxRetries:    DefaultEndpointRetries,
		initialDelay:  DefaultEndpointDelay,
		backoffFactor: DefaultEndpointBackoff,
	}
}

// BaseURL returns the endpoint base URL (empty for the provider default).
func (e Embedding) BaseURL() string { return e.baseURL }

// APIKey returns the API key.
func (e Embedding) APIKey() string { return e.apiKey }

// Model returns the embedding model identifier.
func (e Embedding) Model() string { return e.model }

// Dimension returns the declared output dimensionality.
func (e Embedding) Dimension() int { return e.dimension }

// MaxInputChars returns the maximum input length passed to the model.
func (e Embedding) MaxInputChars() int { return e.maxInputChars }

// Timeout returns the request timeout.
func (e Embedding) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Embedding) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Embedding) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Embedding) BackoffFactor() float64 { return e.backoffFactor }

// IsConfigured returns true when the endpoint can actually be called.
func (e Embedding) IsConfigured() bool {
	return e.apiKey != "" || e.baseURL != ""
}

// EmbeddingOption is a functional option for Embedding.
type EmbeddingOption func(*Embedding)

// WithBaseURL sets the endpoint base URL.
func WithBaseURL(url string) EmbeddingOption {
	return func(e *Embedding) { e.baseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) EmbeddingOption {
	return func(e *Embedding) { e.apiKey = key }
}

// WithModel sets the embedding model identifier.
func WithModel(model string) EmbeddingOption {
	return func(e *Embedding) { e.model = model }
}

// WithDimension sets the declared output dimensionality.
func WithDimension(dim int) EmbeddingOption {
	return func(e *Embedding) {
		if dim > 0 {
			e.dimension = dim
		}
	}
}

// WithMaxInputChars sets the maximum input length.
func WithMaxInputChars(n int) EmbeddingOption {
	return func(e *Embedding) {
		if n > 0 {
			e.maxInputChars = n
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) EmbeddingOption {
	return func(e *Embedding) { e.timeout = d }
}

// WithMaxRetries sets the retry count.
func WithMaxRetries(n int) EmbeddingOption {
	return func(e *Embedding) { e.maxRetries = n }
}

// NewEmbeddingWithOptions creates an Embedding config with functional options.
func NewEmbeddingWithOptions(opts ...EmbeddingOption) Embedding {
	e := NewEmbedding()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	dataDir       string
	dbURL         string
	logLevel      string
	logFormat     string
	taxonomyPath  string
	embedding     Embedding
	batchSize     int
	workerCount   int
	searchLimit   int
	minSimilarity float64
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexindex"
	}
	return filepath.Join(home, ".lexindex")
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:       dataDir,
		dbURL:         "sqlite:///" + filepath.Join(dataDir, "lexindex.db"),
		logLevel:      DefaultLogLevel,
		logFormat:     "pretty",
		embedding:     NewEmbedding(),
		batchSize:     DefaultBatchSize,
		workerCount:   DefaultWorkerCount,
		searchLimit:   DefaultSearchLimit,
		minSimilarity: DefaultMinSimilarity,
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format (pretty or json).
func (c AppConfig) LogFormat() string { return c.logFormat }

// TaxonomyPath returns the path to a YAML taxonomy override, or empty for
// the built-in taxonomy.
func (c AppConfig) TaxonomyPath() string { return c.taxonomyPath }

// Embedding returns the embedding endpoint config.
func (c AppConfig) Embedding() Embedding { return c.embedding }

// BatchSize returns the number of articles per embedding batch.
func (c AppConfig) BatchSize() int { return c.batchSize }

// WorkerCount returns the intra-batch parallelism.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// MinSimilarity returns the default minimum similarity threshold.
func (c AppConfig) MinSimilarity() float64 { return c.minSimilarity }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory, updating the default DB URL with it.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		c.dbURL = "sqlite:///" + filepath.Join(dir, "lexindex.db")
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) {
		if url != "" {
			c.dbURL = url
		}
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) {
		if level != "" {
			c.logLevel = level
		}
	}
}

// WithLogFormat sets the log format.
func WithLogFormat(format string) AppConfigOption {
	return func(c *AppConfig) {
		if format != "" {
			c.logFormat = format
		}
	}
}

// WithTaxonomyPath sets the taxonomy YAML path.
func WithTaxonomyPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.taxonomyPath = path }
}

// WithEmbedding sets the embedding config.
func WithEmbedding(e Embedding) AppConfigOption {
	return func(c *AppConfig) { c.embedding = e }
}

// WithBatchSize sets the embedding batch size.
func WithBatchSize(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithWorkerCount sets the intra-batch parallelism.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithSearchLimit sets the default search result limit.
func WithSearchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithMinSimilarity sets the default minimum similarity threshold.
func WithMinSimilarity(s float64) AppConfigOption {
	return func(c *AppConfig) { c.minSimilarity = s }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// The API key is shown only as a presence flag.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("taxonomy_path", c.taxonomyPath),
		slog.String("embedding_model", c.embedding.Model()),
		slog.Int("embedding_dim", c.embedding.Dimension()),
		slog.String("embedding_base_url", c.embedding.BaseURL()),
		slog.Bool("embedding_api_key_set", c.embedding.APIKey() != ""),
		slog.Int("batch_size", c.batchSize),
		slog.Int("worker_count", c.workerCount),
	}
}

func (c AppConfig) maskedDBURL() string {
	if len(c.dbURL) >= 7 && c.dbURL[:7] == "sqlite:" {
		return c.dbURL
	}
	return "postgres://***@***"
}

// String implements fmt.Stringer for debugging without leaking credentials.
func (c AppConfig) String() string {
	return fmt.Sprintf("AppConfig{db=%s model=%s dim=%d}", c.maskedDBURL(), c.embedding.Model(), c.embedding.Dimension())
}
