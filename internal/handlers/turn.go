package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hollowmoor/haunt-engine/internal/engine"
	"github.com/hollowmoor/haunt-engine/internal/services"
	"github.com/hollowmoor/haunt-engine/pkg/game"
	"github.com/hollowmoor/haunt-engine/pkg/variant"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// TurnRequest is the inbound turn payload. The full previous state
// round-trips through the client on every request; the server holds
// nothing between turns.
type TurnRequest struct {
	UserChoice        string          `json:"userChoice"`
	PreviousGameBoard *game.GameState `json:"previousGameBoard"`

	// StorySummary lets summary-handoff variants supply the rolling
	// summary the caller maintains. Ignored by accumulate variants.
	StorySummary string `json:"storySummary,omitempty"`
}

type TurnResponse struct {
	Data *game.GameState `json:"data"`
}

// TurnHandler serves the per-variant turn endpoints.
//
// Routes:
// GET  /v1/turn/{variant}  - Opening state for a new game
// POST /v1/turn/{variant}  - Play one turn
type TurnHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewTurnHandler creates a new turn handler.
func NewTurnHandler(engine *engine.Engine, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		engine: engine,
		logger: logger,
	}
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/turn"), "/")
	if name == "" {
		h.writeError(w, http.StatusBadRequest, "Game variant is required, e.g. /v1/turn/castle")
		return
	}

	tmpl, err := variant.Get(name)
	if err != nil {
		h.logger.Warn("Unknown game variant requested", "variant", name)
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleNewGame(w, tmpl)
	case http.MethodPost:
		h.handleTurn(w, r, tmpl)
	default:
		h.logger.Warn("Method not allowed for turn endpoint", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
	}
}

// handleNewGame returns the variant's hard-coded opening state.
func (h *TurnHandler) handleNewGame(w http.ResponseWriter, tmpl *variant.StoryTemplate) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TurnResponse{Data: tmpl.InitialState()}); err != nil {
		h.logger.Error("Failed to encode initial state response", "error", err)
	}
}

func (h *TurnHandler) handleTurn(w http.ResponseWriter, r *http.Request, tmpl *variant.StoryTemplate) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in turn request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.UserChoice == "" {
		h.writeError(w, http.StatusBadRequest, "userChoice field is required")
		return
	}
	if req.PreviousGameBoard == nil {
		h.writeError(w, http.StatusBadRequest, "previousGameBoard field is required")
		return
	}

	prev := req.PreviousGameBoard
	if tmpl.HistoryPolicy == variant.SummaryHandoff && req.StorySummary != "" {
		// The caller owns the rolling summary in handoff variants; a
		// supplied summary replaces whatever the state carries.
		prev = prev.Clone()
		prev.StorySummary = []string{req.StorySummary}
	}

	next, err := h.engine.Advance(r.Context(), tmpl, prev, req.UserChoice)
	if err != nil {
		h.writeAdvanceError(w, tmpl.Name, err)
		return
	}

	h.logger.Info("Turn completed",
		"variant", tmpl.Name,
		"turn", next.TurnNumber,
		"terminal", next.IsTerminal())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TurnResponse{Data: next}); err != nil {
		h.logger.Error("Failed to encode turn response", "error", err)
	}
}

// writeAdvanceError maps engine failures onto HTTP statuses. The
// previous state is never modified on failure, so every non-terminal
// error is safe for the client to retry with the same payload.
func (h *TurnHandler) writeAdvanceError(w http.ResponseWriter, variantName string, err error) {
	var (
		terminalErr  *game.TerminalStateError
		malformedErr *game.MalformedResponseError
		schemaErr    *game.SchemaViolationError
		transportErr *services.TransportError
		providerErr  *services.ProviderError
	)

	switch {
	case errors.As(err, &terminalErr):
		h.logger.Warn("Turn attempted on ended game", "variant", variantName)
		h.writeError(w, http.StatusConflict, err.Error())

	case errors.As(err, &malformedErr), errors.As(err, &schemaErr):
		h.logger.Error("Model returned an unusable response", "variant", variantName, "error", err)
		h.writeError(w, http.StatusBadGateway, "The storyteller returned an unusable response. Please retry your choice.")

	case errors.As(err, &transportErr), errors.As(err, &providerErr):
		h.logger.Error("Completion request failed", "variant", variantName, "error", err)
		h.writeError(w, http.StatusBadGateway, "Failed to reach the storyteller. Please retry your choice.")

	default:
		h.logger.Error("Turn failed", "variant", variantName, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to play turn")
	}
}

func (h *TurnHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
