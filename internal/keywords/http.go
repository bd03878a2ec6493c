package keywords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single extraction round-trip.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL is where the extractor service listens by default.
const DefaultBaseURL = "http://localhost:5002"

// extractPath is the extractor's endpoint, relative to the base URL.
const extractPath = "/extract-keywords"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPExtractor calls the extractor service over HTTP:
// POST {"text": ...} -> {"keywords": [...]}.
type HTTPExtractor struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTPExtractor creates an extractor for the service at baseURL. A
// non-positive timeout falls back to DefaultTimeout.
func NewHTTPExtractor(baseURL string, timeout time.Duration) *HTTPExtractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPExtractor{
		endpoint: strings.TrimRight(baseURL, "/") + extractPath,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract implements Extractor.
func (e *HTTPExtractor) Extract(ctx context.Context, text string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"text": PlainText(text)})
	if err != nil {
		return degraded(e.fail("failed to encode request", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return degraded(e.fail("failed to create request", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return degraded(e.fail("request failed", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return degraded(e.fail("failed to read response body", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return degraded(e.fail(fmt.Sprintf("HTTP status %d", resp.StatusCode), nil))
	}

	keywords, err := decodeResponse(body)
	if err != nil {
		return degraded(e.fail("invalid response", err))
	}
	return success(keywords)
}

func (e *HTTPExtractor) fail(msg string, cause error) error {
	return &Error{Provider: "http", Message: msg, Cause: cause}
}
