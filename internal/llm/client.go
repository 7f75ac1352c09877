// Package llm provides a provider-agnostic client for chat-completion APIs.
// Calls are single-shot, blocking request/response: no retry, no fallback, no
// cross-call state. Failures are classified transient or fatal so callers can
// tag them without unwrapping provider-specific errors.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize limits the response body read to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // Message content
}

// Request defines a completion request.
type Request struct {
	// Model is the provider-side model identifier.
	Model string

	// Messages is the ordered chat input.
	Messages []Message

	// Temperature controls randomness. nil uses the endpoint default.
	Temperature *float64

	// MaxTokens bounds the response length. 0 uses the endpoint default.
	MaxTokens int
}

// TokenUsage reports token consumption for a completion call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response contains the completion result.
type Response struct {
	// RequestID uniquely identifies this call for log correlation.
	RequestID string

	// Content is the generated text.
	Content string

	// Model is the model that actually served the request.
	Model string

	// Usage contains token consumption metrics, when the provider reports
	// them.
	Usage TokenUsage

	// FinishReason indicates why generation stopped.
	FinishReason string
}

// Client sends completion requests to a single configured provider endpoint.
type Client struct {
	provider   Provider
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a client for the named provider. baseURL may be empty to
// use the provider's default endpoint.
func NewClient(providerName, baseURL string, opts ...ClientOption) (*Client, error) {
	provider := GetProvider(providerName)
	if provider == nil {
		return nil, fmt.Errorf("unknown provider %q (registered: %s)",
			providerName, strings.Join(ListProviders(), ", "))
	}

	c := &Client{
		provider: provider,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // Allow time for LLM responses
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete sends one completion request and returns the result. Provider
// failures come back wrapped as TransientError or FatalError; the caller
// decides how to surface them.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, NewFatalError(fmt.Errorf("model is required"))
	}
	if len(req.Messages) == 0 {
		return nil, NewFatalError(fmt.Errorf("at least one message is required"))
	}

	requestID := uuid.New().String()
	url := c.provider.BuildURL(c.baseURL)

	body, err := c.provider.BuildRequestBody(req.Model, req.Messages, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, NewFatalError(fmt.Errorf("build request body: %w", err))
	}

	c.logger.Debug("sending completion request",
		"request_id", requestID,
		"provider", c.provider.Name(),
		"model", req.Model,
		"url", url,
		"messages", len(req.Messages))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewFatalError(fmt.Errorf("create HTTP request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.provider.SetHeaders(httpReq)

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, NewTransientError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, NewTransientError(fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(httpResp.StatusCode, respBody)
	}

	resp, err := c.provider.ParseResponse(respBody, req.Model)
	if err != nil {
		return nil, NewFatalError(err)
	}
	resp.RequestID = requestID

	c.logger.Debug("completion request finished",
		"request_id", requestID,
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
		"duration", time.Since(started))

	return resp, nil
}

// classifyHTTPError determines if an HTTP error is transient or fatal.
func classifyHTTPError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}

	err := fmt.Errorf("completion API error (status %d): %s", statusCode, bodyStr)

	switch {
	case statusCode == http.StatusTooManyRequests:
		// Rate limiting is transient
		return NewTransientError(err)
	case statusCode >= 500:
		return NewTransientError(err)
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		// Auth errors are fatal
		return NewFatalError(err)
	default:
		return NewFatalError(err)
	}
}
