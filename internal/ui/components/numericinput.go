package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// NumericInput wraps bubbles/textinput restricted to decimal input:
// digits, one leading minus, one decimal point.
type NumericInput struct {
	Model     textinput.Model
	submitted bool
	correct   bool
}

// NewNumericInput creates a focused numeric input.
func NewNumericInput(placeholder string) NumericInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Focus()

	return NumericInput{Model: ti}
}

// Init returns the initial command.
func (n NumericInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update handles messages, swallowing key presses that would make the
// value non-numeric. Input is frozen after Submit.
func (n NumericInput) Update(msg tea.Msg) (NumericInput, tea.Cmd) {
	if n.submitted {
		return n, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !n.allowed(key[0]) {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

func (n NumericInput) allowed(ch byte) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return true
	case ch == '-':
		// Minus only at the start.
		return n.Model.Position() == 0 && !containsByte(n.Model.Value(), '-')
	case ch == '.':
		return !containsByte(n.Model.Value(), '.')
	default:
		return false
	}
}

func containsByte(s string, ch byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			return true
		}
	}
	return false
}

// View renders the input, with a verdict mark once submitted.
func (n NumericInput) View() string {
	view := n.Model.View()
	if n.submitted {
		if n.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (n NumericInput) Value() string {
	return n.Model.Value()
}

// Submit freezes the input and records the verdict for display.
func (n *NumericInput) Submit(correct bool) {
	n.submitted = true
	n.correct = correct
	n.Model.Blur()
}
