package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// CachedLLMService wraps an LLMService with a completion cache keyed
// on the prompt pair. Prompt building is deterministic, so replaying
// the same choice against the same state produces the same key; a hit
// lets a retried turn resolve without a second provider round trip.
//
// The cache is a transparent optimization. Game state itself is never
// stored server-side, and any cache failure falls through to the
// underlying gateway.
type CachedLLMService struct {
	inner  LLMService
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure CachedLLMService implements LLMService
var _ LLMService = (*CachedLLMService)(nil)

// NewCachedLLMService wraps inner with a cache. Entries expire after
// ttl.
func NewCachedLLMService(inner LLMService, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedLLMService {
	return &CachedLLMService{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Complete serves the completion from cache when possible, otherwise
// delegates and stores the result.
func (s *CachedLLMService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	key := completionKey(req)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Completion cache read failed", "error", err)
	} else if cached != "" {
		s.logger.Debug("Completion cache hit", "key", key)
		return cached, nil
	}

	raw, err := s.inner.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("Completion cache write failed", "error", err)
	}

	return raw, nil
}

// completionKey hashes the prompt pair into a stable cache key.
func completionKey(req CompletionRequest) string {
	h := sha256.New()
	h.Write([]byte(req.SystemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(req.UserPrompt))
	return "completion:" + hex.EncodeToString(h.Sum(nil))
}
