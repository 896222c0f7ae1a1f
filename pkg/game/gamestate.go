package game

import "encoding/json"

// Status classifies a game session in variants that distinguish
// how a game ended.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusCaptured Status = "captured"
	StatusVictory  Status = "victory"
)

// IsValid reports whether s is one of the declared status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlaying, StatusCaptured, StatusVictory:
		return true
	}
	return false
}

// Outcome hints attached to an action in variants where the model
// decides an action's result up front.
const (
	OutcomeContinues = "Game Continues"
	OutcomeOver      = "Game Over"
)

// Action is a single choice offered to the player. On the wire an
// action is either a bare string ("Search the wine cellar") or an
// object with a declared outcome ({"action": "...", "result": "Game
// Over"}), depending on the game variant. Both forms decode into the
// same type; an empty Result means no outcome hint was given.
type Action struct {
	Label  string
	Result string
}

type actionObject struct {
	Action string `json:"action"`
	Result string `json:"result,omitempty"`
}

// MarshalJSON writes the bare-string form when the action carries no
// outcome hint, and the object form otherwise, so states round-trip
// in their variant's native shape.
func (a Action) MarshalJSON() ([]byte, error) {
	if a.Result == "" {
		return json.Marshal(a.Label)
	}
	return json.Marshal(actionObject{Action: a.Label, Result: a.Result})
}

// UnmarshalJSON accepts both wire forms.
func (a *Action) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		a.Label = label
		a.Result = ""
		return nil
	}

	var obj actionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Label = obj.Action
	a.Result = obj.Result
	return nil
}

// GameState is the authoritative snapshot of one game session at one
// turn. It is never mutated in place: the engine produces a fresh
// state each turn, and the client round-trips it on every request.
// There is no server-side store.
type GameState struct {
	// TurnNumber increments by exactly one per accepted turn. The
	// engine is the single source of truth for it; the model's
	// self-reported value is discarded.
	TurnNumber int `json:"currentTurn"`

	// NextPassage is the narrative passage shown this turn.
	NextPassage string `json:"nextPassage"`

	// NextPassageSummary holds this turn's bullet summaries. Entries
	// are appended to StorySummary and never edited afterwards.
	NextPassageSummary []string `json:"nextPassageSummary"`

	// StorySummary is the append-only accumulation of prior passage
	// summaries, fed back into future prompts as story context.
	StorySummary []string `json:"storySummary"`

	// UserActions are the choices offered to the player, in the order
	// the model produced them.
	UserActions []Action `json:"userActions"`

	// Inventory tracks collectibles in variants that have them.
	// Always non-nil after validation, empty when the variant has no
	// collectibles.
	Inventory []string `json:"inventory,omitempty"`

	// GameOver is the terminal flag used by variants without a
	// status enum.
	GameOver bool `json:"gameOver,omitempty"`

	// GameStatus is the terminal classification used by variants
	// that distinguish capture from victory. Empty in variants that
	// use GameOver instead.
	GameStatus Status `json:"gameStatus,omitempty"`
}

// IsTerminal reports whether the session has ended. No further turns
// are accepted against a terminal state.
func (gs *GameState) IsTerminal() bool {
	return gs.GameOver || gs.GameStatus == StatusCaptured || gs.GameStatus == StatusVictory
}

// Clone returns a deep copy. Handlers use it to adjust a
// caller-supplied state without mutating the request payload.
func (gs *GameState) Clone() *GameState {
	out := *gs
	out.NextPassageSummary = append([]string(nil), gs.NextPassageSummary...)
	out.StorySummary = append([]string(nil), gs.StorySummary...)
	out.UserActions = append([]Action(nil), gs.UserActions...)
	out.Inventory = append([]string(nil), gs.Inventory...)
	return &out
}
