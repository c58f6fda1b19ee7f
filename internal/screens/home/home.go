package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/screens/bookmarks"
	"github.com/abhisek/prepdeck/internal/screens/stats"
	"github.com/abhisek/prepdeck/internal/screens/subjects"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type progressLoadedMsg struct {
	attempted int
	bookmarks int
}

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	deps      *screens.Deps
	menu      components.Menu
	attempted int
	bookmarks int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	s := &HomeScreen{deps: deps}
	s.menu = buildMenu(deps)
	return s
}

func buildMenu(deps *screens.Deps) components.Menu {
	items := []components.MenuItem{
		{Label: "BROWSE SUBJECTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: subjects.New(deps)}
			}
		}},
		{Label: "BOOKMARKS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: bookmarks.New(deps)}
			}
		}},
		{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(deps)}
			}
		}},
		{Label: "SWITCH COLLECTION", Action: func() tea.Cmd {
			deps.Collection = deps.NextCollection()
			return reloadProgress(deps)
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return components.NewMenu(items)
}

func reloadProgress(deps *screens.Deps) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var attempted, marked int
		if attempts, err := deps.Attempts.List(ctx, deps.Collection); err == nil {
			attempted = len(attempts)
		}
		if bms, err := deps.Bookmarks.List(ctx, deps.Collection); err == nil {
			marked = len(bms)
		}
		return progressLoadedMsg{attempted: attempted, bookmarks: marked}
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	return reloadProgress(s.deps)
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.attempted = msg.attempted
		s.bookmarks = msg.bookmarks
		return s, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *HomeScreen) View(width, height int) string {
	b := s.deps.Bank()
	total := 0
	if b != nil {
		total = b.QuestionCount()
	}

	title := theme.Title.Render("PREPDECK")
	subtitle := theme.Subtitle.Render(s.deps.CollectionTitle())
	counts := theme.Hint.Render(fmt.Sprintf(
		"%d questions  ·  %d attempted  ·  %d bookmarked",
		total, s.attempted, s.bookmarks,
	))

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(subtitle)
	sb.WriteString("\n")
	sb.WriteString(counts)
	sb.WriteString("\n\n")
	sb.WriteString(s.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(sb.String())
}
