package services

import (
	"context"
	"sync"
)

// MockLLMService is a mock implementation of LLMService for testing.
type MockLLMService struct {
	CompleteFunc func(ctx context.Context, req CompletionRequest) (string, error)

	// Track calls for testing
	CompleteCalls []CompletionRequest

	mu sync.Mutex // protects all fields above
}

// Ensure MockLLMService implements LLMService
var _ LLMService = (*MockLLMService)(nil)

// NewMockLLMService creates a new mock completion gateway.
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		CompleteCalls: make([]CompletionRequest, 0),
	}
}

// Complete records the call and delegates to CompleteFunc when set.
func (m *MockLLMService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteCalls = append(m.CompleteCalls, req)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}

	// Default behavior - an empty JSON object
	return "{}", nil
}

// SetResponse sets up the mock to return fixed raw text.
func (m *MockLLMService) SetResponse(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, req CompletionRequest) (string, error) {
		return raw, nil
	}
}

// SetError sets up the mock to fail every completion.
func (m *MockLLMService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, req CompletionRequest) (string, error) {
		return "", err
	}
}

// Reset clears all call tracking.
func (m *MockLLMService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = nil
	m.CompleteCalls = make([]CompletionRequest, 0)
}

// GetCalls returns a copy of the recorded calls in a thread-safe way.
func (m *MockLLMService) GetCalls() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]CompletionRequest, len(m.CompleteCalls))
	copy(calls, m.CompleteCalls)
	return calls
}
