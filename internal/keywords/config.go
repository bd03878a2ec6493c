package keywords

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Provider selects the extractor implementation.
type Provider string

// Supported providers.
const (
	ProviderHTTP   Provider = "http"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// Config configures the extractor built by New.
type Config struct {
	Provider Provider
	URL      string
	Timeout  time.Duration
	Model    string
	APIKey   string
}

// New builds the extractor selected by cfg. The returned closer releases
// provider resources and is never nil.
func New(ctx context.Context, cfg Config) (Extractor, io.Closer, error) {
	switch cfg.Provider {
	case ProviderHTTP, "":
		return NewHTTPExtractor(cfg.URL, cfg.Timeout), nopCloser{}, nil
	case ProviderGemini:
		g, err := NewGeminiExtractor(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return g, g, nil
	case ProviderNone:
		return NopExtractor{}, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown extractor provider %q", cfg.Provider)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
