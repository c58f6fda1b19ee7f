package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// Choice is one selectable option with its display letter.
type Choice struct {
	Label string
	Text  string
}

// ChoiceList is an option selector for choice questions. In multi mode
// space toggles picks and any number may be selected; in single mode
// moving the cursor is the pick. The list holds selection state only —
// the caller evaluates the submission and feeds the result back with
// MarkResult for feedback coloring.
type ChoiceList struct {
	Choices []Choice
	Multi   bool
	Cursor  int

	picked   map[int]bool
	resolved bool
	correct  map[string]bool
}

// NewChoiceList creates a selector over the given choices.
func NewChoiceList(choices []Choice, multi bool) ChoiceList {
	return ChoiceList{
		Choices: choices,
		Multi:   multi,
		picked:  make(map[int]bool),
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and pick toggling. Input is
// ignored after MarkResult.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.resolved {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.picked[c.Cursor] = !c.picked[c.Cursor]
		}
	}

	return c, nil
}

// SelectedLabels returns the picked option letters in option order. In
// single mode that is the cursor position's label.
func (c ChoiceList) SelectedLabels() []string {
	if !c.Multi {
		if c.Cursor < 0 || c.Cursor >= len(c.Choices) {
			return nil
		}
		return []string{c.Choices[c.Cursor].Label}
	}

	var labels []string
	for i, ch := range c.Choices {
		if c.picked[i] {
			labels = append(labels, ch.Label)
		}
	}
	return labels
}

// HasSelection reports whether anything is picked.
func (c ChoiceList) HasSelection() bool {
	return len(c.SelectedLabels()) > 0
}

// MarkResult freezes the list and records the correct labels for
// feedback rendering.
func (c *ChoiceList) MarkResult(correctLabels []string) {
	c.resolved = true
	c.correct = make(map[string]bool, len(correctLabels))
	for _, l := range correctLabels {
		c.correct[l] = true
	}
}

// Resolved reports whether MarkResult has been called.
func (c ChoiceList) Resolved() bool {
	return c.resolved
}

// View renders the choice list.
func (c ChoiceList) View() string {
	var s string
	for i, ch := range c.Choices {
		cursor := "  "
		if i == c.Cursor && !c.resolved {
			cursor = "▸ "
		}

		mark := ""
		if c.Multi {
			if c.picked[i] {
				mark = "[x] "
			} else {
				mark = "[ ] "
			}
		}

		line := fmt.Sprintf("%s%s%s)  %s", cursor, mark, ch.Label, ch.Text)

		switch {
		case c.resolved && c.correct[ch.Label]:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case c.resolved && c.wasPicked(i):
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case c.resolved:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

func (c ChoiceList) wasPicked(i int) bool {
	if c.Multi {
		return c.picked[i]
	}
	return i == c.Cursor
}
