package practice

import (
	"time"

	"github.com/abhisek/prepdeck/internal/bank"
)

// Summary holds the data displayed when a run ends.
type Summary struct {
	Subject   string
	Chapter   string
	Duration  time.Duration
	Total     int
	Attempted int
	Correct   int
	Score     int
	Accuracy  float64
	Ungraded  int // subjective submissions, counted but not scored
	ByType    []TypeResult
}

// TypeResult aggregates run results for one question type.
type TypeResult struct {
	Type      bank.QuestionType
	Attempted int
	Correct   int
	Score     int
}

// BuildSummary aggregates the run's results.
func BuildSummary(r *Run) *Summary {
	s := &Summary{
		Subject:   r.Subject,
		Chapter:   r.Chapter,
		Duration:  time.Since(r.StartTime),
		Total:     len(r.Questions),
		Attempted: len(r.Results),
	}

	byType := make(map[bank.QuestionType]*TypeResult)
	for _, q := range r.Questions {
		res, ok := r.Results[q.ID]
		if !ok {
			continue
		}

		if !res.Verdict.Graded {
			s.Ungraded++
			continue
		}
		s.Score += res.Verdict.Score
		if res.Verdict.Correct {
			s.Correct++
		}

		tr := byType[q.Type]
		if tr == nil {
			tr = &TypeResult{Type: q.Type}
			byType[q.Type] = tr
		}
		tr.Attempted++
		tr.Score += res.Verdict.Score
		if res.Verdict.Correct {
			tr.Correct++
		}
	}

	graded := s.Attempted - s.Ungraded
	if graded > 0 {
		s.Accuracy = float64(s.Correct) / float64(graded)
	}

	// Stable type order for display.
	for _, typ := range []bank.QuestionType{bank.TypeSingleCorrect, bank.TypeMultipleCorrect, bank.TypeNumerical} {
		if tr, ok := byType[typ]; ok {
			s.ByType = append(s.ByType, *tr)
		}
	}
	return s
}
