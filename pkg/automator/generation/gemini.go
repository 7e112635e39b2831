package generation

import (
	"context"
	"fmt"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
	"google.golang.org/genai"
)

// GeminiCompleter calls the Gemini generateContent API.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a completer against the Gemini Developer API.
// A non-empty baseURL replaces the default endpoint.
func NewGeminiCompleter(ctx context.Context, apiKey, model, baseURL string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

// Model returns the model name.
func (c *GeminiCompleter) Model() string {
	return c.model
}

// Complete sends the prompt with a JSON response MIME type and returns the response text.
func (c *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.ResponseFormat == prompt.ResponseFormatJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

var _ Completer = (*GeminiCompleter)(nil)
