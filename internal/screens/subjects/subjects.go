package subjects

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/screens/chapters"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

// SubjectsScreen lists the subjects of the active collection.
type SubjectsScreen struct {
	deps     *screens.Deps
	subjects []bank.Subject
	selected int
}

var _ screen.Screen = (*SubjectsScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectsScreen)(nil)

// New creates a new SubjectsScreen.
func New(deps *screens.Deps) *SubjectsScreen {
	return &SubjectsScreen{
		deps:     deps,
		subjects: deps.Bank().Subjects(),
	}
}

func (s *SubjectsScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectsScreen) Title() string {
	return "Subjects"
}

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.subjects)-1 {
			s.selected++
		}
	case "enter":
		if s.selected >= 0 && s.selected < len(s.subjects) {
			subject := s.subjects[s.selected]
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: chapters.New(s.deps, subject.ID)}
			}
		}
	}

	return s, nil
}

func (s *SubjectsScreen) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Choose a subject"))
	sb.WriteString("\n\n")

	for i, subject := range s.subjects {
		count := 0
		for _, ch := range subject.Chapters {
			count += len(ch.Questions())
		}
		line := fmt.Sprintf("%s  (%d chapters, %d questions)",
			subject.Title, len(subject.Chapters), count)

		if i == s.selected {
			sb.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			sb.WriteString(theme.Unselected.Render("    " + line))
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(sb.String())
}
