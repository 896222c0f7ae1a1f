package services

import (
	"context"
	"fmt"
)

// CompletionRequest is one chat-completion exchange: a fixed system
// prompt, a per-turn user prompt, and the variant's sampling
// parameters.
type CompletionRequest struct {
	SystemPrompt     string
	UserPrompt       string
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// LLMService is the completion gateway. Complete sends a single
// blocking request and returns the assistant's raw text. The returned
// text is untrusted: callers must not assume it is valid JSON or that
// it matches any schema.
type LLMService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TransportError means the request never produced a usable provider
// response: network failure, timeout, or a broken envelope.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError means the provider answered, but with a non-2xx
// status or an error envelope instead of a completion.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion provider error: %s", e.Message)
}
