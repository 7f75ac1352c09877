// Package analyzer dispatches documents to the completion API for one of a
// fixed set of analysis tasks and validates the structured results.
//
// Every failure mode, including provider errors, is reported inside the
// returned Result rather than as a Go error: callers check one shape
// regardless of what went wrong.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dpshade/pocket-analyst/internal/llm"
)

const (
	// DefaultModel is used when the caller does not name a model.
	DefaultModel = "gpt-3.5-turbo"

	// maxInputTokens is the approximate input budget before truncation.
	maxInputTokens = 4000

	// charsPerToken is the crude token estimate: ~4 characters per token.
	// Deliberately not real tokenization; downstream consumers rely on the
	// exact prefix this produces.
	charsPerToken = 4

	// Output budgets: specialized analyses get more room than generic
	// metadata.
	specializedOutputTokens = 800
	metadataOutputTokens    = 512

	// analysisTemperature biases the model toward deterministic structured
	// output.
	analysisTemperature = 0.3
)

// ErrorKind tags the failure class inside a Result.
type ErrorKind string

const (
	ErrorInvalidKind       ErrorKind = "invalid_kind"
	ErrorExternalAPI       ErrorKind = "external_api"
	ErrorMalformedResponse ErrorKind = "malformed_response"
	ErrorSchemaViolation   ErrorKind = "schema_violation"
)

// Result is the outcome of one analysis call. On success Data holds the
// schema-validated structure; on failure Error and ErrorKind are set and Data
// is nil.
type Result struct {
	Kind      Kind           `json:"kind"`
	Model     string         `json:"model,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind ErrorKind      `json:"error_kind,omitempty"`
}

// Errored reports whether the result carries a failure.
func (r Result) Errored() bool {
	return r.Error != ""
}

// Completer is the completion-API boundary the analyzer calls through.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Analyzer routes documents to the completion API for analysis.
type Analyzer struct {
	client Completer
	logger *slog.Logger
}

// New creates an analyzer over the given completion client.
func New(client Completer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

// Analyze runs one analysis task over the document text. Unknown kinds are
// rejected before any API call is attempted.
func (a *Analyzer) Analyze(ctx context.Context, text string, kind Kind, model string) Result {
	cfg, ok := kindConfigs[kind]
	if !ok {
		return Result{
			Kind:      kind,
			Error:     fmt.Sprintf("invalid analysis kind: %s", kind),
			ErrorKind: ErrorInvalidKind,
		}
	}

	if model == "" {
		model = DefaultModel
	}

	truncated := Truncate(text, maxInputTokens)
	a.logger.Info("performing analysis", "kind", kind, "model", model, "input_bytes", len(truncated))

	temperature := analysisTemperature
	resp, err := a.client.Complete(ctx, llm.Request{
		Model: model,
		Messages: []llm.Message{
			{Role: "system", Content: cfg.systemPrompt},
			{Role: "user", Content: truncated},
		},
		Temperature: &temperature,
		MaxTokens:   cfg.maxOutputTokens,
	})
	if err != nil {
		a.logger.Error("completion API error", "kind", kind, "error", err)
		return Result{
			Kind:      kind,
			Model:     model,
			Error:     fmt.Sprintf("completion API error: %s", err),
			ErrorKind: ErrorExternalAPI,
		}
	}

	data, err := parseResponse(resp.Content)
	if err != nil {
		a.logger.Error("invalid JSON returned by LLM", "kind", kind, "error", err)
		return Result{
			Kind:      kind,
			Model:     resp.Model,
			Error:     "invalid JSON returned by the LLM",
			ErrorKind: ErrorMalformedResponse,
		}
	}

	if err := cfg.schema.Validate(data); err != nil {
		a.logger.Error("analysis result failed schema validation", "kind", kind, "error", err)
		return Result{
			Kind:      kind,
			Model:     resp.Model,
			Error:     fmt.Sprintf("analysis result does not match expected shape: %s", err),
			ErrorKind: ErrorSchemaViolation,
		}
	}

	return Result{Kind: kind, Model: resp.Model, Data: data}
}

// parseResponse extracts and decodes the JSON object from the raw completion
// text.
func parseResponse(content string) (map[string]any, error) {
	raw := llm.ExtractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Truncate returns a left-anchored prefix of the text sized to the token
// budget, approximated as maxTokens*4 characters. No attempt is made to cut
// on token or sentence boundaries.
func Truncate(text string, maxTokens int) string {
	maxChars := maxTokens * charsPerToken
	if maxChars <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}
