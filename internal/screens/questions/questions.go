package questions

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/mathtext"
	"github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/screens/question"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type attemptsLoadedMsg struct {
	attempted map[string]bool
}

// typeCycle is the order the type filter steps through.
var typeCycle = []bank.QuestionType{
	"", bank.TypeSingleCorrect, bank.TypeMultipleCorrect, bank.TypeNumerical, bank.TypeSubjective,
}

// QuestionsScreen lists a chapter's questions with level, type, and
// search filters.
type QuestionsScreen struct {
	deps      *screens.Deps
	subjectID string
	chapterID string
	chapter   *bank.Chapter

	all      []bank.Question
	filtered []bank.Question
	filters  bank.Filters
	sorted   bool
	selected int

	searching bool
	search    textinput.Model

	attempted map[string]bool
	errMsg    string
}

var _ screen.Screen = (*QuestionsScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionsScreen)(nil)

// New creates a QuestionsScreen over one chapter.
func New(deps *screens.Deps, subjectID, chapterID string) *QuestionsScreen {
	s := &QuestionsScreen{
		deps:      deps,
		subjectID: subjectID,
		chapterID: chapterID,
	}

	chapter, err := deps.Bank().Chapter(subjectID, chapterID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.chapter = chapter
	s.all = chapter.Questions()
	s.filtered = s.all

	ti := textinput.New()
	ti.Placeholder = "search prompt text"
	ti.CharLimit = 64
	s.search = ti

	return s
}

func (s *QuestionsScreen) Init() tea.Cmd {
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

func (s *QuestionsScreen) Title() string {
	if s.chapter == nil {
		return "Questions"
	}
	return s.chapter.Title
}

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "l", Description: "Level"},
		{Key: "t", Description: "Type"},
		{Key: "/", Description: "Search"},
		{Key: "s", Description: "Sort"},
		{Key: "Esc", Description: "Back"},
	}
}

// applyFilters recomputes the visible list and clamps the cursor.
func (s *QuestionsScreen) applyFilters() {
	s.filtered = bank.Filter(s.all, s.filters)
	if s.sorted {
		s.filtered = bank.SortByLevel(s.filtered)
	}
	if s.selected >= len(s.filtered) {
		s.selected = len(s.filtered) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		s.attempted = msg.attempted
		return s, nil

	case tea.KeyMsg:
		if s.chapter == nil {
			return s, nil
		}

		if s.searching {
			switch msg.String() {
			case "enter":
				s.searching = false
				s.search.Blur()
				s.filters.Search = s.search.Value()
				s.applyFilters()
				return s, nil
			case "esc":
				s.searching = false
				s.search.Blur()
				s.search.SetValue(s.filters.Search)
				return s, nil
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.filtered)-1 {
				s.selected++
			}
		case "l":
			s.filters.Level = (s.filters.Level + 1) % 4
			s.applyFilters()
		case "t":
			for i, typ := range typeCycle {
				if typ == s.filters.Type {
					s.filters.Type = typeCycle[(i+1)%len(typeCycle)]
					break
				}
			}
			s.applyFilters()
		case "s":
			s.sorted = !s.sorted
			s.applyFilters()
		case "/":
			s.searching = true
			return s, s.search.Focus()
		case "enter":
			if len(s.filtered) == 0 {
				return s, nil
			}
			run := practice.NewRun(s.subjectID, s.chapterID, s.filtered)
			run.Seek(s.selected)
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: question.New(s.deps, run)}
			}
		}
	}

	return s, nil
}

func (s *QuestionsScreen) View(width, height int) string {
	if s.chapter == nil {
		return theme.Incorrect.Render(s.errMsg)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.chapter.Title))
	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle.Render(s.filterLine()))
	sb.WriteString("\n\n")

	if s.searching {
		sb.WriteString("  / " + s.search.View())
		sb.WriteString("\n\n")
	}

	if len(s.filtered) == 0 {
		sb.WriteString(theme.Hint.Render("No questions match the active filters."))
	}

	maxPrompt := width - 30
	if maxPrompt < 20 {
		maxPrompt = 20
	}

	for i, q := range s.filtered {
		prompt := mathtext.Render(q.Prompt)
		if prompt == "" {
			prompt = "(image-only question)"
		}
		if len(prompt) > maxPrompt {
			prompt = prompt[:maxPrompt-1] + "…"
		}

		marker := "  "
		if s.attempted[q.ID] {
			marker = "● "
		}
		level := lipgloss.NewStyle().
			Foreground(theme.LevelColor(q.Level)).
			Render(fmt.Sprintf("L%d", q.Level))

		line := fmt.Sprintf("%s%s %-16s %s", marker, level, q.Type, prompt)
		if i == s.selected {
			sb.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			sb.WriteString(theme.Unselected.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(sb.String())
}

func (s *QuestionsScreen) filterLine() string {
	parts := []string{fmt.Sprintf("%d of %d questions", len(s.filtered), len(s.all))}
	if s.filters.Level != 0 {
		parts = append(parts, fmt.Sprintf("level %d", s.filters.Level))
	}
	if s.filters.Type != "" {
		parts = append(parts, string(s.filters.Type))
	}
	if s.filters.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.filters.Search))
	}
	if s.sorted {
		parts = append(parts, "sorted by level")
	}
	return strings.Join(parts, "  ·  ")
}
