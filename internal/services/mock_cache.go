package services

import (
	"context"
	"time"
)

// MockCache is a mock implementation of Cache for testing.
type MockCache struct {
	PingFunc func(ctx context.Context) error
	SetFunc  func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetFunc  func(ctx context.Context, key string) (string, error)

	// Track calls for testing
	PingCalls  int
	SetCalls   []SetCall
	GetCalls   []string
	CloseCalls int
}

type SetCall struct {
	Key        string
	Value      interface{}
	Expiration time.Duration
}

// Ensure MockCache implements Cache interface
var _ Cache = (*MockCache)(nil)

// NewMockCache creates a new mock cache.
func NewMockCache() *MockCache {
	return &MockCache{
		SetCalls: make([]SetCall, 0),
		GetCalls: make([]string, 0),
	}
}

func (m *MockCache) Ping(ctx context.Context) error {
	m.PingCalls++

	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}

	// Default behavior - success
	return nil
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.SetCalls = append(m.SetCalls, SetCall{
		Key:        key,
		Value:      value,
		Expiration: expiration,
	})

	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	// Default behavior - success
	return nil
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.GetCalls = append(m.GetCalls, key)

	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	// Default behavior - not found
	return "", nil
}

func (m *MockCache) Close() error {
	m.CloseCalls++
	return nil
}

// SetPingError sets up the mock to return an error on Ping.
func (m *MockCache) SetPingError(err error) {
	m.PingFunc = func(ctx context.Context) error {
		return err
	}
}
