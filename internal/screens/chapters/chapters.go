package chapters

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/screens/questions"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type attemptsLoadedMsg struct {
	attempted map[string]bool
}

// ChaptersScreen lists the chapters of one subject with per-chapter
// attempt counts.
type ChaptersScreen struct {
	deps      *screens.Deps
	subject   *bank.Subject
	selected  int
	attempted map[string]bool // question ID -> attempted
	errMsg    string
}

var _ screen.Screen = (*ChaptersScreen)(nil)
var _ screen.KeyHintProvider = (*ChaptersScreen)(nil)

// New creates a ChaptersScreen for the given subject ID.
func New(deps *screens.Deps, subjectID string) *ChaptersScreen {
	s := &ChaptersScreen{deps: deps}
	subject, err := deps.Bank().Subject(subjectID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.subject = subject
	return s
}

func (s *ChaptersScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.deps.Attempts.List(context.Background(), s.deps.Collection)
		if err != nil {
			return attemptsLoadedMsg{attempted: make(map[string]bool)}
		}
		seen := make(map[string]bool, len(attempts))
		for id := range attempts {
			seen[id] = true
		}
		return attemptsLoadedMsg{attempted: seen}
	}
}

func (s *ChaptersScreen) Title() string {
	if s.subject == nil {
		return "Chapters"
	}
	return s.subject.Title
}

func (s *ChaptersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChaptersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		s.attempted = msg.attempted
		return s, nil

	case tea.KeyMsg:
		if s.subject == nil {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.subject.Chapters)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= 0 && s.selected < len(s.subject.Chapters) {
				chapter := s.subject.Chapters[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: questions.New(s.deps, s.subject.ID, chapter.ID),
					}
				}
			}
		}
	}

	return s, nil
}

func (s *ChaptersScreen) View(width, height int) string {
	if s.subject == nil {
		return theme.Incorrect.Render(s.errMsg)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.subject.Title))
	sb.WriteString("\n\n")

	for i, ch := range s.subject.Chapters {
		qs := ch.Questions()
		done := 0
		for _, q := range qs {
			if s.attempted[q.ID] {
				done++
			}
		}
		line := fmt.Sprintf("%s  (%d/%d attempted)", ch.Title, done, len(qs))

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
