package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type statsLoadedMsg struct {
	stats progress.Stats
	err   error
}

type clearedMsg struct {
	err error
}

// StatsScreen shows aggregate attempt statistics for the active
// collection, with a confirmation-gated reset.
type StatsScreen struct {
	deps       *screens.Deps
	stats      progress.Stats
	loaded     bool
	errMsg     string
	confirming bool
	confirmIdx int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(deps *screens.Deps) *StatsScreen {
	return &StatsScreen{deps: deps}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *StatsScreen) load() tea.Cmd {
	return func() tea.Msg {
		st, err := progress.ComputeStats(context.Background(), s.deps.Attempts, s.deps.Collection)
		return statsLoadedMsg{stats: st, err: err}
	}
}

func (s *StatsScreen) clear() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{err: s.deps.Attempts.ClearAll(context.Background(), s.deps.Collection)}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "←/→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "c", Description: "Clear progress"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.stats = msg.stats
		}
		return s, nil

	case clearedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		return s, s.load()

	case tea.KeyMsg:
		if s.confirming {
			switch msg.String() {
			case "left", "right", "tab", "h", "l":
				s.confirmIdx = 1 - s.confirmIdx
			case "enter":
				s.confirming = false
				if s.confirmIdx == 0 {
					return s, s.clear()
				}
			case "y":
				s.confirming = false
				return s, s.clear()
			case "n", "esc":
				s.confirming = false
			}
			return s, nil
		}

		if msg.String() == "c" && s.stats.Attempted > 0 {
			s.confirming = true
			s.confirmIdx = 1
		}
		return s, nil
	}

	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Your progress"))
	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle.Render(s.deps.CollectionTitle()))
	sb.WriteString("\n\n")

	switch {
	case !s.loaded:
		sb.WriteString(theme.Hint.Render("Loading…"))
	case s.errMsg != "":
		sb.WriteString(theme.Incorrect.Render(s.errMsg))
	case s.stats.Attempted == 0:
		sb.WriteString(theme.Hint.Render("No attempts recorded yet."))
	default:
		sb.WriteString(s.statsView(width))
	}

	if s.confirming {
		sb.WriteString("\n\n")
		sb.WriteString(theme.Incorrect.Render(
			"Delete all attempts for this collection? This cannot be undone."))
		sb.WriteString("\n\n")
		yes := components.NewButton("DELETE", s.confirmIdx == 0, nil)
		no := components.NewButton("KEEP", s.confirmIdx == 1, nil)
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes.View(), "   ", no.View()))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(sb.String())
}

func (s *StatsScreen) statsView(width int) string {
	var sb strings.Builder

	total := 0
	if b := s.deps.Bank(); b != nil {
		total = b.QuestionCount()
	}

	sb.WriteString(theme.Body.Render(fmt.Sprintf(
		"Attempted  %d / %d", s.stats.Attempted, total)))
	sb.WriteString("\n")
	sb.WriteString(theme.Body.Render(fmt.Sprintf(
		"Correct    %d  (%.0f%%)", s.stats.Correct, s.stats.Accuracy()*100)))
	sb.WriteString("\n")
	sb.WriteString(theme.Body.Render(fmt.Sprintf(
		"Score      %+d", s.stats.Score)))
	sb.WriteString("\n\n")

	barWidth := width / 2
	if barWidth > 48 {
		barWidth = 48
	}
	for _, ls := range s.stats.ByLevel {
		label := lipgloss.NewStyle().
			Foreground(theme.LevelColor(ls.Level)).
			Render(fmt.Sprintf("Level %d", ls.Level))
		bar := components.NewProgressBar(label, ls.Accuracy(), true, barWidth)
		sb.WriteString(bar.View())
		sb.WriteString(theme.Hint.Render(fmt.Sprintf("   %d/%d correct", ls.Correct, ls.Attempted)))
		sb.WriteString("\n")
	}

	return sb.String()
}
