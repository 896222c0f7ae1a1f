package game

import "fmt"

// UnknownVariantError is returned when a variant identifier is not
// registered.
type UnknownVariantError struct {
	Variant string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown game variant %q", e.Variant)
}

// TerminalStateError is returned when a turn is attempted against a
// state that has already ended. It is never recoverable by retrying
// with a different choice.
type TerminalStateError struct {
	Status Status
}

func (e *TerminalStateError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("game has ended with status %q; no further turns accepted", e.Status)
	}
	return "game is over; no further turns accepted"
}

// MalformedResponseError is returned when no JSON object can be
// isolated from the model's raw text.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// SchemaViolationError is returned when a parsed response is missing
// a required field or carries a value outside its declared type or
// enum. The partial object is never surfaced.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in field %q: %s", e.Field, e.Reason)
}
