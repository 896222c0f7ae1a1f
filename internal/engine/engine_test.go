package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmoor/haunt-engine/internal/services"
	"github.com/hollowmoor/haunt-engine/pkg/game"
	"github.com/hollowmoor/haunt-engine/pkg/variant"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

const castleTurnOne = `{
	"nextPassage": "The fireplace yawns above you, a chimney of soot and promise.",
	"nextPassageSummary": ["The player discovers the empty fireplace."],
	"currentTurn": 1,
	"userActions": [
		{"action": "Climb the fireplace", "result": "Game Continues"},
		{"action": "Shout for help", "result": "Game Over"}
	],
	"gameOver": false
}`

func TestAdvance_SuccessfulTurn(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse("  " + castleTurnOne + "\n")

	e := New(mockLLM, testLogger())
	prev := tmpl.InitialState()

	next, err := e.Advance(context.Background(), tmpl, prev, "Start Your Nightmare")
	require.NoError(t, err)

	assert.Equal(t, prev.TurnNumber+1, next.TurnNumber)
	assert.False(t, next.IsTerminal())
	assert.Equal(t, "The fireplace yawns above you, a chimney of soot and promise.", next.NextPassage)
	require.Len(t, next.UserActions, 2)
	assert.Equal(t, game.OutcomeOver, next.UserActions[1].Result)
}

func TestAdvance_StampsTurnNumberOverModelValue(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	// Model drifts and claims turn 40
	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["s"],"currentTurn":40,"userActions":[{"action":"a","result":"Game Continues"}],"gameOver":false}`)

	e := New(mockLLM, testLogger())
	prev := tmpl.InitialState()
	prev.TurnNumber = 6

	next, err := e.Advance(context.Background(), tmpl, prev, "a")
	require.NoError(t, err)
	assert.Equal(t, 7, next.TurnNumber)
}

func TestAdvance_AccumulatesHistory(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["turn summary one","turn summary two"],"userActions":[{"action":"a","result":"Game Continues"}],"gameOver":false}`)

	e := New(mockLLM, testLogger())
	prev := tmpl.InitialState()
	prevHistoryLen := len(prev.StorySummary)

	next, err := e.Advance(context.Background(), tmpl, prev, "a")
	require.NoError(t, err)

	require.Len(t, next.StorySummary, prevHistoryLen+2)
	assert.Equal(t, prev.StorySummary, next.StorySummary[:prevHistoryLen], "prior entries are never edited or reordered")
	assert.Equal(t, "turn summary one", next.StorySummary[prevHistoryLen])
	assert.Equal(t, "turn summary two", next.StorySummary[prevHistoryLen+1])
	assert.Len(t, prev.StorySummary, prevHistoryLen, "previous state untouched")
}

func TestAdvance_HistoryGrowthOverConsecutiveTurns(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	e := New(mockLLM, testLogger())
	state := tmpl.InitialState()
	initialLen := len(state.StorySummary)

	const turns = 5
	for i := 0; i < turns; i++ {
		mockLLM.Reset()
		mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["one bullet"],"userActions":[{"action":"a","result":"Game Continues"}],"gameOver":false}`)

		state, err = e.Advance(context.Background(), tmpl, state, "a")
		require.NoError(t, err)
		assert.Len(t, mockLLM.GetCalls(), 1, "exactly one gateway call per turn")
	}

	assert.Equal(t, turns, state.TurnNumber)
	assert.Len(t, state.StorySummary, initialLen+turns, "one summary entry per turn, no loss, no duplication")
}

func TestAdvance_SummaryHandoffPassesModelSummaryThrough(t *testing.T) {
	tmpl, err := variant.Get("manor")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["s"],"userActions":["a","b"],"inventory":["black key"],"storySummary":["the model's own recap"],"gameStatus":"playing"}`)

	e := New(mockLLM, testLogger())
	prev := tmpl.InitialState()

	next, err := e.Advance(context.Background(), tmpl, prev, "Look around the cellar")
	require.NoError(t, err)

	assert.Equal(t, []string{"the model's own recap"}, next.StorySummary)
	assert.Equal(t, []string{"black key"}, next.Inventory)
}

func TestAdvance_TerminalStateRejected(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		mutate  func(*game.GameState)
	}{
		{name: "game over flag", variant: "castle", mutate: func(gs *game.GameState) { gs.GameOver = true }},
		{name: "captured", variant: "manor", mutate: func(gs *game.GameState) { gs.GameStatus = game.StatusCaptured }},
		{name: "victory", variant: "manor", mutate: func(gs *game.GameState) { gs.GameStatus = game.StatusVictory }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := variant.Get(tt.variant)
			require.NoError(t, err)

			mockLLM := services.NewMockLLMService()
			e := New(mockLLM, testLogger())

			prev := tmpl.InitialState()
			tt.mutate(prev)

			next, err := e.Advance(context.Background(), tmpl, prev, "anything")
			assert.Nil(t, next)

			var terminal *game.TerminalStateError
			require.True(t, errors.As(err, &terminal))
			assert.Empty(t, mockLLM.GetCalls(), "no gateway call for a terminal state")
		})
	}
}

func TestAdvance_PropagatesExtractionErrors(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse("Sorry, I cannot continue.")

	e := New(mockLLM, testLogger())
	prev := tmpl.InitialState()
	prevTurn := prev.TurnNumber

	next, err := e.Advance(context.Background(), tmpl, prev, "Start Your Nightmare")
	assert.Nil(t, next)

	var malformed *game.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, prevTurn, prev.TurnNumber, "previous state unchanged, safe to retry")
}

func TestAdvance_PropagatesGatewayErrors(t *testing.T) {
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetError(&services.TransportError{Err: errors.New("connection refused")})

	e := New(mockLLM, testLogger())

	next, err := e.Advance(context.Background(), tmpl, tmpl.InitialState(), "Start Your Nightmare")
	assert.Nil(t, next)

	var transport *services.TransportError
	assert.True(t, errors.As(err, &transport))
	assert.Len(t, mockLLM.GetCalls(), 1, "no retries inside the engine")
}

func TestAdvance_SendsTemplateTuningAndPrompts(t *testing.T) {
	tmpl, err := variant.Get("manor")
	require.NoError(t, err)

	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["s"],"userActions":["a"],"gameStatus":"playing"}`)

	e := New(mockLLM, testLogger())
	_, err = e.Advance(context.Background(), tmpl, tmpl.InitialState(), "Listen at the door")
	require.NoError(t, err)

	calls := mockLLM.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tmpl.SystemInstructions, calls[0].SystemPrompt)
	assert.Contains(t, calls[0].UserPrompt, "User Choice: Listen at the door")
	assert.Equal(t, tmpl.Tuning.Temperature, calls[0].Temperature)
	assert.Equal(t, tmpl.Tuning.TopP, calls[0].TopP)
}
