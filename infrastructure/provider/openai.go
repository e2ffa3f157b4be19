package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/creditguardian/lexindex/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder generates embeddings through any OpenAI-compatible API.
// A custom base URL points it at local inference servers exposing the same
// wire format.
type OpenAIEmbedder struct {
	client        *openai.Client
	model         string
	dimension     int
	maxInputChars int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewOpenAIEmbedder creates an embedder from embedding configuration.
func NewOpenAIEmbedder(cfg config.Embedding) (*OpenAIEmbedder, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey())
	if cfg.BaseURL() != "" {
		clientConfig.BaseURL = cfg.BaseURL()
	}
	if cfg.Timeout() > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout: cfg.Timeout(),
		}
	}

	return &OpenAIEmbedder{
		client:        openai.NewClientWithConfig(clientConfig),
		model:         cfg.Model(),
		dimension:     cfg.Dimension(),
		maxInputChars: cfg.MaxInputChars(),
		maxRetries:    cfg.MaxRetries(),
		initialDelay:  cfg.InitialDelay(),
		backoffFactor: cfg.BackoffFactor(),
	}, nil
}

// Model returns the embedding model identifier.
func (p *OpenAIEmbedder) Model() string { return p.model }

// Dimension returns the expected vector dimensionality.
func (p *OpenAIEmbedder) Dimension() int { return p.dimension }

// Embed returns the embedding vector for a single text. A vector of
// unexpected length is an error here; batch callers get the raw vectors
// and decide per item.
func (p *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors[0]) != p.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, p.dimension, len(vectors[0]))
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one API call. Each input is truncated
// to the configured character limit before sending. Vectors are returned
// as-is; dimensionality is the caller's concern.
func (p *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	inputs := make([]string, len(texts))
	for i, t := range texts {
		inputs[i] = truncateRunes(t, p.maxInputChars)
	}

	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: inputs,
	}

	var resp openai.EmbeddingResponse
	var err error

	err = p.withRetry(ctx, func() error {
		resp, err = p.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) != len(inputs) {
			return fmt.Errorf("%w: got %d vectors for %d texts", errEmbeddingCountMismatch, len(resp.Data), len(inputs))
		}
		return nil
	})
	if err != nil {
		return nil, p.wrapError("embedding", err)
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}

// Ping verifies the provider is reachable and configured correctly by
// embedding a short probe. Intended to run once before a batch job so a
// bad API key fails fast instead of after the first batch.
func (p *OpenAIEmbedder) Ping(ctx context.Context) error {
	_, err := p.Embed(ctx, "ping")
	if err != nil {
		return fmt.Errorf("embedding provider unavailable: %w", err)
	}
	return nil
}

// withRetry executes the function with exponential backoff retry.
func (p *OpenAIEmbedder) withRetry(ctx context.Context, fn func() error) error {
	delay := p.initialDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !p.isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * p.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable determines if an error should be retried.
func (p *OpenAIEmbedder) isRetryable(err error) bool {
	// Partial embedding responses are retryable. Upstream providers can
	// return 200 with incomplete data under transient load.
	if errors.Is(err, errEmbeddingCountMismatch) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		// Network errors are retryable
		return true
	}

	return false
}

// wrapError wraps an OpenAI error into a ProviderError.
func (p *OpenAIEmbedder) wrapError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError(operation, 0, err.Error(), err)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
