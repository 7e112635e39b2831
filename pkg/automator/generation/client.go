// Package generation sends generation requests to a text-generation service
// and enforces the two-field response contract.
package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
)

// CompletionRequest is a provider-neutral single-turn completion.
type CompletionRequest struct {
	Prompt         string
	System         string
	ResponseFormat string
	MaxTokens      int
}

// Completer is the narrow interface over a text-generation service.
type Completer interface {
	// Complete returns the raw response text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Model returns the model name used for completions.
	Model() string
}

// Client turns a prompt.Request into a GenerationResult. It never retries.
type Client struct {
	completer Completer
	maxTokens int
	timeout   time.Duration
	logger    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for failures.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaxTokens caps the response length for providers that require a limit.
// Non-positive values keep DefaultMaxTokens.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTimeout bounds each service call. Zero leaves latency to the service.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client over the given completer.
func NewClient(completer Completer, opts ...ClientOption) *Client {
	c := &Client{
		completer: completer,
		maxTokens: DefaultMaxTokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends req and parses the response. Every failure is an *Error
// whose Kind is ErrServiceFailure or ErrContractViolation.
func (c *Client) Generate(ctx context.Context, req prompt.Request) (models.GenerationResult, error) {
	model := c.completer.Model()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.completer.Complete(ctx, CompletionRequest{
		Prompt:         req.Instruction,
		System:         req.System,
		ResponseFormat: req.ResponseFormat,
		MaxTokens:      c.maxTokens,
	})
	if err != nil {
		c.logger.Error("generation request failed", "model", model, "error", err)
		return models.GenerationResult{}, &Error{Kind: ErrServiceFailure, Model: model, Err: err}
	}

	result, err := ParseResult(text)
	if err != nil {
		c.logger.Error("generation response rejected", "model", model, "error", err, "response_bytes", len(text))
		return models.GenerationResult{}, &Error{Kind: ErrContractViolation, Model: model, Err: err}
	}

	c.logger.Debug("generation succeeded", "model", model, "code_bytes", len(result.Code))
	return result, nil
}
