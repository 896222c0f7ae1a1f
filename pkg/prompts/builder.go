// Package prompts assembles the per-turn prompt pair sent to the
// completion gateway. Building is pure: no I/O, no mutation of the
// previous state, and byte-identical output for identical inputs.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hollowmoor/haunt-engine/pkg/game"
	"github.com/hollowmoor/haunt-engine/pkg/variant"
)

// Builder constructs the system and user prompts for one turn using a
// fluent interface.
type Builder struct {
	template *variant.StoryTemplate
	prev     *game.GameState
	choice   string
}

// New creates a new prompt builder.
func New() *Builder {
	return &Builder{}
}

// WithTemplate sets the variant template supplying the fixed system
// instructions.
func (b *Builder) WithTemplate(t *variant.StoryTemplate) *Builder {
	b.template = t
	return b
}

// WithState sets the previous turn's state, supplying story context.
func (b *Builder) WithState(prev *game.GameState) *Builder {
	b.prev = prev
	return b
}

// WithChoice sets the player's verbatim choice for this turn.
func (b *Builder) WithChoice(choice string) *Builder {
	b.choice = choice
	return b
}

// Build returns the system prompt and user prompt for the turn.
//
// The system prompt is the template's instructions verbatim; it does
// not depend on turn data. The user prompt carries the next turn
// number, the accumulated story summary as plain bullet text, the
// previous passage, and the player's choice.
func (b *Builder) Build() (systemPrompt string, userPrompt string, err error) {
	if b.template == nil {
		return "", "", fmt.Errorf("template is required")
	}
	if b.prev == nil {
		return "", "", fmt.Errorf("previous game state is required")
	}
	if b.choice == "" {
		return "", "", fmt.Errorf("player choice is required")
	}

	var sb strings.Builder
	sb.WriteString("Current Turn: ")
	sb.WriteString(strconv.Itoa(b.prev.TurnNumber + 1))
	sb.WriteString("\n\nStory Summary:\n")
	sb.WriteString(formatSummary(b.prev.StorySummary))
	sb.WriteString("\n\nLast Story Passage: ")
	sb.WriteString(b.prev.NextPassage)
	sb.WriteString("\n\nUser Choice: ")
	sb.WriteString(b.choice)

	return b.template.SystemInstructions, sb.String(), nil
}

// formatSummary renders history entries as plain bullet text rather
// than nested JSON, so the model receives readable narrative context.
func formatSummary(entries []string) string {
	if len(entries) == 0 {
		return "- (the story has just begun)"
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(entry)
	}
	return sb.String()
}

// BuildPrompts is a convenience function for the common case.
func BuildPrompts(t *variant.StoryTemplate, prev *game.GameState, choice string) (string, string, error) {
	return New().
		WithTemplate(t).
		WithState(prev).
		WithChoice(choice).
		Build()
}
