package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Extract coerces raw model output into a validated GameState.
//
// The model is instructed to return only a JSON object, but that is a
// soft contract: extraction runs as a strict two-phase pipeline with a
// distinct failure at each phase. First the text is trimmed and parsed
// as a single JSON object (MalformedResponseError on failure), then
// every field the schema declares is checked for presence, type and
// enum membership (SchemaViolationError on failure). Extra unknown
// fields are accepted but never reach the returned state: only fields
// the schema declares are decoded, so a stray gameStatus from a
// variant that declares none cannot flip the state terminal.
//
// Absent optional fields are normalized to their canonical empty form,
// so callers never branch on presence. No partial state is ever
// returned alongside an error.
//
// TurnNumber and story accumulation are the engine's responsibility;
// whatever the model reported for them is passed through untouched for
// the engine to overwrite.
func Extract(raw string, schema Schema) (*GameState, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &MalformedResponseError{Err: errors.New("empty response")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	declared := make(map[string]json.RawMessage, len(schema.Fields))
	for _, f := range schema.Fields {
		value, ok := fields[f.Name]
		if !ok || isJSONNull(value) {
			if f.Required {
				return nil, &SchemaViolationError{Field: f.Name, Reason: "required field is missing"}
			}
			continue
		}
		if err := validateField(f, value); err != nil {
			return nil, err
		}
		if f.Kind == KindNumber {
			// The engine stamps turn numbering itself; a fractional
			// echo is truncated rather than rejected.
			var n float64
			_ = json.Unmarshal(value, &n)
			value = json.RawMessage(strconv.FormatInt(int64(n), 10))
		}
		declared[f.Name] = value
	}

	buf, err := json.Marshal(declared)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	var gs GameState
	if err := json.Unmarshal(buf, &gs); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	normalize(&gs)
	return &gs, nil
}

func validateField(f Field, value json.RawMessage) error {
	switch f.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a string"}
		}

	case KindStringList:
		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a list of strings"}
		}

	case KindBool:
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a boolean"}
		}

	case KindNumber:
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a number"}
		}

	case KindStatus:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a string"}
		}
		if !Status(s).IsValid() {
			return &SchemaViolationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("%q is not a game status", s),
			}
		}
		if len(f.Enum) > 0 && !inEnum(f.Enum, s) {
			return &SchemaViolationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("value %q is not one of [%s]", s, strings.Join(f.Enum, ", ")),
			}
		}

	case KindActionList:
		var actions []Action
		if err := json.Unmarshal(value, &actions); err != nil {
			return &SchemaViolationError{Field: f.Name, Reason: "expected a list of actions"}
		}
		for _, a := range actions {
			if a.Label == "" {
				return &SchemaViolationError{Field: f.Name, Reason: "action label is empty"}
			}
			if len(f.Enum) > 0 && !inEnum(f.Enum, a.Result) {
				return &SchemaViolationError{
					Field:  f.Name,
					Reason: fmt.Sprintf("action result %q is not one of [%s]", a.Result, strings.Join(f.Enum, ", ")),
				}
			}
		}

	default:
		return &SchemaViolationError{Field: f.Name, Reason: fmt.Sprintf("unsupported field kind %q", f.Kind)}
	}
	return nil
}

// normalize replaces absent optional collections with their canonical
// empty form.
func normalize(gs *GameState) {
	if gs.NextPassageSummary == nil {
		gs.NextPassageSummary = make([]string, 0)
	}
	if gs.StorySummary == nil {
		gs.StorySummary = make([]string, 0)
	}
	if gs.UserActions == nil {
		gs.UserActions = make([]Action, 0)
	}
	if gs.Inventory == nil {
		gs.Inventory = make([]string, 0)
	}
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func inEnum(enum []string, value string) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
	}
	return false
}
