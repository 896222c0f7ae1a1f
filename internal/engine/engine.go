// Package engine advances game sessions one turn at a time. The
// engine is stateless across invocations: everything a turn needs is
// passed in explicitly, and a failed turn leaves the previous state
// untouched, so callers may retry the same choice safely.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollowmoor/haunt-engine/internal/services"
	"github.com/hollowmoor/haunt-engine/pkg/game"
	"github.com/hollowmoor/haunt-engine/pkg/prompts"
	"github.com/hollowmoor/haunt-engine/pkg/variant"
)

// Engine orchestrates one turn: build prompts, invoke the completion
// gateway, extract and validate the response, and merge it into the
// next authoritative state.
type Engine struct {
	llm    services.LLMService
	logger *slog.Logger
}

// New creates a turn engine around the given completion gateway.
func New(llm services.LLMService, logger *slog.Logger) *Engine {
	return &Engine{
		llm:    llm,
		logger: logger,
	}
}

// Advance plays one turn against prev and returns the new state.
//
// The turn number is stamped by the engine, never taken from the
// model, so counting stays consistent under model drift. Under the
// Accumulate policy the engine also owns the story summary, appending
// the new passage summary to the previous history; under
// SummaryHandoff the model-reported summary passes through for the
// caller to manage.
//
// Advance performs no retries: one call is one deterministic pipeline
// execution around a single gateway request. All failures surface as
// typed errors with prev left untouched.
func (e *Engine) Advance(ctx context.Context, tmpl *variant.StoryTemplate, prev *game.GameState, choice string) (*game.GameState, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("template is required")
	}
	if prev == nil {
		return nil, fmt.Errorf("previous game state is required")
	}
	if prev.IsTerminal() {
		return nil, &game.TerminalStateError{Status: prev.GameStatus}
	}

	systemPrompt, userPrompt, err := prompts.New().
		WithTemplate(tmpl).
		WithState(prev).
		WithChoice(choice).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompts: %w", err)
	}

	e.logger.Debug("Advancing turn",
		"variant", tmpl.Name,
		"turn", prev.TurnNumber+1,
		"choice", choice)

	raw, err := e.llm.Complete(ctx, services.CompletionRequest{
		SystemPrompt:     systemPrompt,
		UserPrompt:       userPrompt,
		Temperature:      tmpl.Tuning.Temperature,
		TopP:             tmpl.Tuning.TopP,
		FrequencyPenalty: tmpl.Tuning.FrequencyPenalty,
		PresencePenalty:  tmpl.Tuning.PresencePenalty,
	})
	if err != nil {
		return nil, err
	}

	next, err := game.Extract(raw, tmpl.Schema)
	if err != nil {
		e.logger.Warn("Model response rejected",
			"variant", tmpl.Name,
			"turn", prev.TurnNumber+1,
			"error", err)
		return nil, err
	}

	next.TurnNumber = prev.TurnNumber + 1

	if tmpl.HistoryPolicy == variant.Accumulate {
		next.StorySummary = accumulate(prev.StorySummary, next.NextPassageSummary)
	}

	return next, nil
}

// accumulate appends this turn's passage summary to the prior history
// without aliasing either slice.
func accumulate(history []string, summary []string) []string {
	out := make([]string, 0, len(history)+len(summary))
	out = append(out, history...)
	out = append(out, summary...)
	return out
}
