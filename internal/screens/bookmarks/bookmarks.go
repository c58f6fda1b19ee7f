package bookmarks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/mathtext"
	"github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/screens/question"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type bookmarksLoadedMsg struct {
	items []progress.Bookmark
	err   error
}

// BookmarksScreen lists saved questions, newest first. Opening one
// jumps into its chapter at that question.
type BookmarksScreen struct {
	deps     *screens.Deps
	items    []progress.Bookmark
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BookmarksScreen)(nil)
var _ screen.KeyHintProvider = (*BookmarksScreen)(nil)

// New creates a new BookmarksScreen.
func New(deps *screens.Deps) *BookmarksScreen {
	return &BookmarksScreen{deps: deps}
}

func (s *BookmarksScreen) Init() tea.Cmd {
	return func() tea.Msg {
		items, err := s.deps.Bookmarks.List(context.Background(), s.deps.Collection)
		return bookmarksLoadedMsg{items: items, err: err}
	}
}

func (s *BookmarksScreen) Title() string {
	return "Bookmarks"
}

func (s *BookmarksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BookmarksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarksLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.items = msg.items
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= 0 && s.selected < len(s.items) {
				return s, s.open(s.items[s.selected])
			}
		}
	}

	return s, nil
}

// open builds a run over the bookmark's chapter, positioned at the
// bookmarked question. A bookmark can outlive its question when banks
// change; that shows as an error line instead of opening.
func (s *BookmarksScreen) open(bm progress.Bookmark) tea.Cmd {
	qs, err := s.deps.Bank().Questions(bm.Subject, bm.Chapter)
	if err != nil {
		s.errMsg = fmt.Sprintf("chapter %s/%s no longer exists", bm.Subject, bm.Chapter)
		return nil
	}

	run := practice.NewRun(bm.Subject, bm.Chapter, qs)
	found := false
	for i, q := range qs {
		if q.ID == bm.QuestionID {
			run.Seek(i)
			found = true
			break
		}
	}
	if !found {
		s.errMsg = fmt.Sprintf("question %s no longer exists", bm.QuestionID)
		return nil
	}

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: question.New(s.deps, run)}
	}
}

func (s *BookmarksScreen) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Bookmarked questions"))
	sb.WriteString("\n\n")

	switch {
	case !s.loaded:
		sb.WriteString(theme.Hint.Render("Loading…"))
	case s.errMsg != "":
		sb.WriteString(theme.Incorrect.Render(s.errMsg))
	case len(s.items) == 0:
		sb.WriteString(theme.Hint.Render("Nothing bookmarked yet. Press 'b' on any question to save it."))
	}

	maxPrompt := width - 40
	if maxPrompt < 20 {
		maxPrompt = 20
	}

	for i, bm := range s.items {
		prompt := mathtext.Render(bm.Prompt)
		if prompt == "" {
			prompt = "(image-only question)"
		}
		if len(prompt) > maxPrompt {
			prompt = prompt[:maxPrompt-1] + "…"
		}

		where := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s / %s", bm.Subject, bm.Chapter))
		line := fmt.Sprintf("★ %s  %s", prompt, where)

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
