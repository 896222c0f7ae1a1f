package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmoor/haunt-engine/internal/engine"
	"github.com/hollowmoor/haunt-engine/internal/services"
	"github.com/hollowmoor/haunt-engine/pkg/game"
	"github.com/hollowmoor/haunt-engine/pkg/variant"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func newTestHandler(mockLLM *services.MockLLMService) *TurnHandler {
	logger := testLogger()
	return NewTurnHandler(engine.New(mockLLM, logger), logger)
}

func castleInitial(t *testing.T) *game.GameState {
	t.Helper()
	tmpl, err := variant.Get("castle")
	require.NoError(t, err)
	return tmpl.InitialState()
}

func doTurn(t *testing.T, handler *TurnHandler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf []byte
	if body != nil {
		if raw, ok := body.(string); ok {
			buf = []byte(raw)
		} else {
			var err error
			buf, err = json.Marshal(body)
			require.NoError(t, err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(buf))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestTurnHandler_NewGame(t *testing.T) {
	handler := newTestHandler(services.NewMockLLMService())

	w := doTurn(t, handler, http.MethodGet, "/v1/turn/castle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, 0, resp.Data.TurnNumber)
	assert.False(t, resp.Data.IsTerminal())
	require.Len(t, resp.Data.UserActions, 1)
	assert.Equal(t, "Start Your Nightmare", resp.Data.UserActions[0].Label)
}

func TestTurnHandler_SuccessfulTurn(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	// Incidental whitespace around the JSON object must be tolerated
	mockLLM.SetResponse("  {\"nextPassage\":\"The fireplace looms.\",\"nextPassageSummary\":[\"The player spots the fireplace.\"],\"currentTurn\":1,\"userActions\":[{\"action\":\"Climb\",\"result\":\"Game Continues\"},{\"action\":\"Hide\",\"result\":\"Game Continues\"}],\"gameOver\":false}\n")

	handler := newTestHandler(mockLLM)

	w := doTurn(t, handler, http.MethodPost, "/v1/turn/castle", TurnRequest{
		UserChoice:        "Start Your Nightmare",
		PreviousGameBoard: castleInitial(t),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, 1, resp.Data.TurnNumber)
	assert.False(t, resp.Data.GameOver)
	assert.Equal(t, "The fireplace looms.", resp.Data.NextPassage)
}

func TestTurnHandler_ModelRefusal(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse("Sorry, I cannot continue.")

	handler := newTestHandler(mockLLM)

	prev := castleInitial(t)
	w := doTurn(t, handler, http.MethodPost, "/v1/turn/castle", TurnRequest{
		UserChoice:        "Start Your Nightmare",
		PreviousGameBoard: prev,
	})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "retry")

	// The caller's state was never touched; the same payload retries cleanly
	assert.Equal(t, 0, prev.TurnNumber)
}

func TestTurnHandler_CapturedThenTerminal(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"Cold hands close around your shoulders.","nextPassageSummary":["A ghost captures the player."],"userActions":[],"inventory":["black key"],"storySummary":["recap"],"gameStatus":"captured"}`)

	handler := newTestHandler(mockLLM)

	tmpl, err := variant.Get("manor")
	require.NoError(t, err)

	w := doTurn(t, handler, http.MethodPost, "/v1/turn/manor", TurnRequest{
		UserChoice:        "Open the furnace",
		PreviousGameBoard: tmpl.InitialState(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, game.StatusCaptured, resp.Data.GameStatus)
	assert.True(t, resp.Data.IsTerminal())

	// Playing on from a terminal state is rejected
	w = doTurn(t, handler, http.MethodPost, "/v1/turn/manor", TurnRequest{
		UserChoice:        "Struggle free",
		PreviousGameBoard: resp.Data,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTurnHandler_SummaryHandoffOverride(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	mockLLM.SetResponse(`{"nextPassage":"p","nextPassageSummary":["s"],"userActions":["a","b"],"gameStatus":"playing"}`)

	handler := newTestHandler(mockLLM)

	tmpl, err := variant.Get("manor")
	require.NoError(t, err)
	prev := tmpl.InitialState()

	w := doTurn(t, handler, http.MethodPost, "/v1/turn/manor", TurnRequest{
		UserChoice:        "Look around the cellar",
		PreviousGameBoard: prev,
		StorySummary:      "The player has searched the basement and found nothing.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	calls := mockLLM.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, "The player has searched the basement and found nothing.")
	// The request payload itself was not mutated
	assert.NotContains(t, prev.StorySummary, "The player has searched the basement and found nothing.")
}

func TestTurnHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "unknown variant",
			method:         http.MethodPost,
			path:           "/v1/turn/graveyard",
			body:           TurnRequest{UserChoice: "x", PreviousGameBoard: &game.GameState{}},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing variant",
			method:         http.MethodGet,
			path:           "/v1/turn",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON body",
			method:         http.MethodPost,
			path:           "/v1/turn/castle",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty choice",
			method:         http.MethodPost,
			path:           "/v1/turn/castle",
			body:           TurnRequest{PreviousGameBoard: &game.GameState{}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing previous state",
			method:         http.MethodPost,
			path:           "/v1/turn/castle",
			body:           TurnRequest{UserChoice: "x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			path:           "/v1/turn/castle",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(services.NewMockLLMService())
			w := doTurn(t, handler, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestTurnHandler_GatewayFailure(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	mockLLM.SetError(&services.ProviderError{StatusCode: http.StatusTooManyRequests, Message: "rate limited"})

	handler := newTestHandler(mockLLM)

	w := doTurn(t, handler, http.MethodPost, "/v1/turn/castle", TurnRequest{
		UserChoice:        "Start Your Nightmare",
		PreviousGameBoard: castleInitial(t),
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
