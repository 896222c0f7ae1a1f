package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/hollowmoor/haunt-engine/pkg/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	passageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	terminalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

type turnResultMsg struct {
	state *game.GameState
	err   error
}

type uiModel struct {
	client  *APIClient
	variant string

	state    *game.GameState
	selected int
	loading  bool
	errMsg   string
	width    int

	spinner spinner.Model
}

func newUIModel(client *APIClient, variantName string, gs *game.GameState) uiModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))

	return uiModel{
		client:  client,
		variant: variantName,
		state:   gs,
		width:   80,
		spinner: s,
	}
}

func (m uiModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "ctrl+n":
			m.loading = true
			m.errMsg = ""
			m.selected = 0
			return m, tea.Batch(m.spinner.Tick, m.newGameCmd())

		case "up", "k":
			if !m.loading && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "j":
			if !m.loading && m.selected < len(m.state.UserActions)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.loading || m.state.IsTerminal() || len(m.state.UserActions) == 0 {
				return m, nil
			}
			choice := m.state.UserActions[m.selected].Label
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.playTurnCmd(choice))
		}

	case turnResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.selected = 0
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m uiModel) playTurnCmd(choice string) tea.Cmd {
	prev := m.state
	return func() tea.Msg {
		next, err := m.client.PlayTurn(m.variant, prev, choice)
		return turnResultMsg{state: next, err: err}
	}
}

func (m uiModel) newGameCmd() tea.Cmd {
	return func() tea.Msg {
		gs, err := m.client.NewGame(m.variant)
		return turnResultMsg{state: gs, err: err}
	}
}

func (m uiModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("The Haunting — %s (turn %d)", m.variant, m.state.TurnNumber)))
	sb.WriteString("\n\n")

	wrapped := wordwrap.String(m.state.NextPassage, min(m.width-2, 100))
	sb.WriteString(passageStyle.Render(wrapped))
	sb.WriteString("\n\n")

	if len(m.state.Inventory) > 0 {
		sb.WriteString(mutedStyle.Render("Inventory: " + strings.Join(m.state.Inventory, ", ")))
		sb.WriteString("\n\n")
	}

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(mutedStyle.Render(" The story unfolds..."))
		sb.WriteString("\n")

	case m.state.IsTerminal():
		sb.WriteString(terminalStyle.Render(endingLine(m.state)))
		sb.WriteString("\n\n")
		sb.WriteString(mutedStyle.Render("Ctrl+N to start a new game, q to quit."))
		sb.WriteString("\n")

	default:
		for i, action := range m.state.UserActions {
			if i == m.selected {
				sb.WriteString(cursorStyle.Render("> " + action.Label))
			} else {
				sb.WriteString("  " + action.Label)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("↑/↓ select · enter choose · Ctrl+N new game · q quit"))
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("Error: " + m.errMsg + " (retry your choice)"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func endingLine(gs *game.GameState) string {
	switch {
	case gs.GameStatus == game.StatusVictory:
		return "*.*.*.*.*. YOU ESCAPED .*.*.*.*.*"
	case gs.GameStatus == game.StatusCaptured:
		return "*.*.*.*.*. THE GHOSTS HAVE YOU .*.*.*.*.*"
	default:
		return "*.*.*.*.*. THE END .*.*.*.*.*"
	}
}
