package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

const geminiPrompt = `Extract the technical skills, tools, technologies, roles and domain terms from the job description below.
Respond with a JSON object of the form {"keywords": ["term", ...]} using short lowercase terms and nothing else.

Job description:
%s`

// GeminiExtractor asks a Gemini model for the keyword set. It honors the
// same degradation contract as HTTPExtractor.
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{client: client, model: model, timeout: timeout}, nil
}

// Extract implements Extractor.
func (e *GeminiExtractor) Extract(ctx context.Context, text string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(geminiPrompt, PlainText(text))))
	if err != nil {
		return degraded(e.fail("failed to generate content", err))
	}

	body, err := responseText(resp)
	if err != nil {
		return degraded(e.fail("empty response", err))
	}

	keywords, err := decodeResponse([]byte(body))
	if err != nil {
		return degraded(e.fail("invalid response", err))
	}
	return success(keywords)
}

// Close releases the underlying client.
func (e *GeminiExtractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func (e *GeminiExtractor) fail(msg string, cause error) error {
	return &Error{Provider: "gemini", Message: msg, Cause: cause}
}

// responseText joins the text parts of the first candidate, stripping a
// markdown code fence if the model added one.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text), nil
}
