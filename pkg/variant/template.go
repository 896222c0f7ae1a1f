package variant

import (
	"github.com/hollowmoor/haunt-engine/pkg/game"
)

// HistoryPolicy governs who owns the rolling story summary across
// turns.
type HistoryPolicy string

const (
	// Accumulate means the engine owns history: each accepted turn's
	// passage summary is appended to the story summary server-side,
	// and the model's own view of the summary is discarded.
	Accumulate HistoryPolicy = "accumulate"

	// SummaryHandoff means the caller owns history: the story summary
	// round-trips through the client, the engine never appends, and
	// the model's reported summary is passed through as-is.
	SummaryHandoff HistoryPolicy = "summary_handoff"
)

// Tuning holds the sampling parameters sent with every completion
// request for a variant.
type Tuning struct {
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// StoryTemplate is the immutable definition of one game variant:
// fixed system instructions, the response schema the model must
// satisfy, the history-accumulation policy, and the hard-coded
// opening state. Templates are constructed once at init and never
// mutated.
type StoryTemplate struct {
	Name               string
	SystemInstructions string
	Schema             game.Schema
	HistoryPolicy      HistoryPolicy
	Tuning             Tuning

	initial game.GameState
}

// InitialState returns a fresh copy of the variant's turn-zero state.
func (t *StoryTemplate) InitialState() *game.GameState {
	return t.initial.Clone()
}
