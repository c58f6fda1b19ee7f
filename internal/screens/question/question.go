package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/evaluate"
	"github.com/abhisek/prepdeck/internal/mathtext"
	"github.com/abhisek/prepdeck/internal/practice"
	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/router"
	"github.com/abhisek/prepdeck/internal/screen"
	"github.com/abhisek/prepdeck/internal/screens"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/layout"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

type bookmarkStateMsg struct {
	bookmarked bool
}

type attemptSavedMsg struct {
	err error
}

// QuestionScreen presents one question from a practice run: the prompt,
// an answer input matching the question type, and feedback after
// submitting. Left/right replaces the screen with the run's neighbor so
// Esc always returns to the question list.
type QuestionScreen struct {
	deps *screens.Deps
	run  *practice.Run
	q    *bank.Question

	choices    components.ChoiceList
	numeric    components.NumericInput
	submitted  bool
	verdict    evaluate.Verdict
	inputErr   string
	bookmarked bool
	saveErr    string
	revealed   bool // subjective questions: solution shown
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// New creates a QuestionScreen for the run's current question.
func New(deps *screens.Deps, run *practice.Run) *QuestionScreen {
	s := &QuestionScreen{
		deps: deps,
		run:  run,
		q:    run.Current(),
	}
	if s.q == nil {
		return s
	}

	switch s.q.Type {
	case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
		choices := make([]components.Choice, len(s.q.Options))
		for i, opt := range s.q.Options {
			text := mathtext.Render(opt.Text)
			if text == "" && opt.Image != "" {
				text = "(see figure " + opt.Image + ")"
			}
			choices[i] = components.Choice{Label: opt.Label, Text: text}
		}
		s.choices = components.NewChoiceList(choices, s.q.Type == bank.TypeMultipleCorrect)
	case bank.TypeNumerical:
		s.numeric = components.NewNumericInput("numeric answer")
	}

	// Resubmission within the run shows the earlier feedback again.
	if res := run.ResultFor(s.q.ID); res != nil {
		s.applyResult(res.Submission, res.Verdict)
	}

	return s
}

func (s *QuestionScreen) applyResult(sub evaluate.Submission, v evaluate.Verdict) {
	s.submitted = true
	s.verdict = v
	switch s.q.Type {
	case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
		s.choices.MarkResult(s.q.CorrectLabels)
	case bank.TypeNumerical:
		s.numeric.Model.SetValue(sub.Numeric)
		s.numeric.Submit(v.Correct)
	}
}

func (s *QuestionScreen) Init() tea.Cmd {
	if s.q == nil {
		return nil
	}
	cmds := []tea.Cmd{
		func() tea.Msg {
			has, err := s.deps.Bookmarks.Has(context.Background(), s.deps.Collection, s.q.ID)
			if err != nil {
				return bookmarkStateMsg{}
			}
			return bookmarkStateMsg{bookmarked: has}
		},
	}
	if s.q.Type == bank.TypeNumerical && !s.submitted {
		cmds = append(cmds, s.numeric.Init())
	}
	return tea.Batch(cmds...)
}

func (s *QuestionScreen) Title() string {
	if s.q == nil {
		return "Question"
	}
	return fmt.Sprintf("Question %d of %d", s.run.Index+1, len(s.run.Questions))
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if !s.submitted && s.q != nil {
		switch s.q.Type {
		case bank.TypeMultipleCorrect:
			hints = append(hints,
				layout.KeyHint{Key: "Space", Description: "Toggle"},
				layout.KeyHint{Key: "Enter", Description: "Submit"})
		case bank.TypeSubjective:
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Solution"})
		default:
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
	}
	hints = append(hints,
		layout.KeyHint{Key: "←→", Description: "Prev/Next"},
		layout.KeyHint{Key: "b", Description: "Bookmark"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarkStateMsg:
		s.bookmarked = msg.bookmarked
		return s, nil

	case attemptSavedMsg:
		if msg.err != nil {
			s.saveErr = "progress not saved: " + msg.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		if s.q == nil {
			return s, nil
		}

		switch msg.String() {
		case "left", "p":
			if s.run.Prev() {
				return s, replaceWith(s.deps, s.run)
			}
			return s, nil
		case "right", "n":
			if s.run.Next() {
				return s, replaceWith(s.deps, s.run)
			}
			return s, nil
		case "b":
			// Numeric input wants plain keys while editing.
			if s.q.Type != bank.TypeNumerical || s.submitted {
				return s, s.toggleBookmark()
			}
		case "enter":
			if !s.submitted {
				return s, s.submit()
			}
			return s, nil
		}

		if s.submitted {
			return s, nil
		}

		var cmd tea.Cmd
		switch s.q.Type {
		case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
			s.choices, cmd = s.choices.Update(msg)
		case bank.TypeNumerical:
			s.numeric, cmd = s.numeric.Update(msg)
		}
		return s, cmd
	}

	return s, nil
}

func replaceWith(deps *screens.Deps, run *practice.Run) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: New(deps, run)}
	}
}

func (s *QuestionScreen) toggleBookmark() tea.Cmd {
	q := s.q
	return func() tea.Msg {
		now, err := s.deps.Bookmarks.Toggle(context.Background(), s.deps.Collection, progress.Bookmark{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Subject:    s.run.Subject,
			Chapter:    s.run.Chapter,
		})
		if err != nil {
			return bookmarkStateMsg{bookmarked: s.bookmarked}
		}
		return bookmarkStateMsg{bookmarked: now}
	}
}

// submit evaluates the current input, shows feedback, and records the
// attempt. Storage errors surface as a notice but never block feedback.
func (s *QuestionScreen) submit() tea.Cmd {
	s.inputErr = ""

	if s.q.Type == bank.TypeSubjective {
		s.revealed = true
		return nil
	}

	sub := evaluate.Submission{}
	switch s.q.Type {
	case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
		sub.Labels = s.choices.SelectedLabels()
		if s.q.Type == bank.TypeSingleCorrect && !s.choices.HasSelection() {
			return nil
		}
	case bank.TypeNumerical:
		sub.Numeric = s.numeric.Value()
	}

	verdict, err := s.run.Submit(sub)
	if err != nil {
		switch {
		case errors.Is(err, evaluate.ErrInvalidNumeric):
			s.inputErr = "enter a number, e.g. 9.8 or -3"
		case errors.Is(err, evaluate.ErrNoSubmission):
			s.inputErr = "pick an answer first"
		default:
			s.inputErr = err.Error()
		}
		return nil
	}

	s.applyResult(sub, verdict)

	// An empty multiple-correct submission shows its zero but is not
	// worth persisting as an attempt.
	if s.q.Type == bank.TypeMultipleCorrect && len(sub.Labels) == 0 {
		return nil
	}

	q := s.q
	deps := s.deps
	answer := sub.Numeric
	if len(sub.Labels) > 0 {
		answer = strings.Join(sub.Labels, ",")
	}
	return func() tea.Msg {
		err := deps.Attempts.Record(context.Background(), deps.Collection, progress.Attempt{
			QuestionID: q.ID,
			Answer:     answer,
			Correct:    verdict.Correct,
			Score:      verdict.Score,
			Level:      q.Level,
			Type:       string(q.Type),
		})
		return attemptSavedMsg{err: err}
	}
}

func (s *QuestionScreen) View(width, height int) string {
	if s.q == nil {
		return theme.Hint.Render("No question selected.")
	}

	var sb strings.Builder

	level := lipgloss.NewStyle().
		Foreground(theme.LevelColor(s.q.Level)).
		Bold(true).
		Render(fmt.Sprintf("Level %d", s.q.Level))
	meta := fmt.Sprintf("%s  ·  %s", level, s.q.Type)
	if s.bookmarked {
		meta += "  ·  " + theme.Bookmarked.Render("★ bookmarked")
	}
	sb.WriteString(meta)
	sb.WriteString("\n\n")

	prompt := mathtext.Render(s.q.Prompt)
	if prompt == "" {
		prompt = "(this question is stated in the figure)"
	}
	sb.WriteString(theme.Body.Bold(true).Render(wrap(prompt, width-12)))
	sb.WriteString("\n")
	if s.q.Image != "" {
		sb.WriteString(theme.Hint.Render("figure: " + s.q.Image))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch s.q.Type {
	case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
		sb.WriteString(s.choices.View())
	case bank.TypeNumerical:
		sb.WriteString("  " + s.numeric.View())
		sb.WriteString("\n")
	case bank.TypeSubjective:
		sb.WriteString(theme.Hint.Render("Subjective question — work it out on paper, then reveal the solution."))
		sb.WriteString("\n")
	}

	if s.inputErr != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.Incorrect.Render(s.inputErr))
		sb.WriteString("\n")
	}

	if s.submitted || s.revealed {
		sb.WriteString("\n")
		sb.WriteString(s.feedbackView(width))
	}

	if s.saveErr != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.Hint.Render(s.saveErr))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(sb.String())
}

func (s *QuestionScreen) feedbackView(width int) string {
	var sb strings.Builder

	if s.submitted {
		if s.verdict.Correct {
			sb.WriteString(theme.Correct.Render(fmt.Sprintf("✓ Correct  (+%d)", s.verdict.Score)))
		} else {
			sb.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ Incorrect  (%+d)", s.verdict.Score)))
		}
		sb.WriteString("\n")

		switch s.q.Type {
		case bank.TypeSingleCorrect, bank.TypeMultipleCorrect:
			sb.WriteString(theme.Body.Render("Correct answer: " + strings.Join(s.q.CorrectLabels, ", ")))
		case bank.TypeNumerical:
			sb.WriteString(theme.Body.Render(fmt.Sprintf("Correct answer: %g", s.q.CorrectValue)))
		}
		sb.WriteString("\n")
	}

	if expl := mathtext.Render(s.q.Explanation); expl != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.Hint.Render("Solution"))
		sb.WriteString("\n")
		sb.WriteString(theme.Body.Render(wrap(expl, width-12)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// wrap breaks text at word boundaries to fit the given width.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
