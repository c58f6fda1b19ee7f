// Package evaluate scores submitted answers against a question's
// correct-answer specification.
//
// Marking scheme (JEE Advanced style):
//
//   - single-correct: +4 correct, -1 incorrect
//   - multiple-correct: +4 for the exact correct set; -2 if any wrong
//     option is picked; floor(|picked|/|correct| * 4) partial credit for
//     a non-empty proper subset of the correct set; 0 for an empty set
//   - numerical: +4 within an absolute tolerance of 0.001, else 0
//   - subjective: never scored automatically
//
// Evaluation is pure; persisting the verdict is the caller's job.
package evaluate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/prepdeck/internal/bank"
)

// Tolerance is the maximum absolute difference between a submitted and
// correct numerical answer still counted as correct.
const Tolerance = 0.001

const (
	marksCorrect     = 4
	marksWrongSingle = -1
	marksWrongMulti  = -2
)

var (
	// ErrNoSubmission is returned when nothing was submitted. Submission
	// is required to score; an unanswered question never incurs the
	// penalty.
	ErrNoSubmission = errors.New("no answer submitted")

	// ErrInvalidNumeric is returned for non-numeric input to a numerical
	// question. This is invalid input, not an incorrect answer, and must
	// be rejected before evaluation.
	ErrInvalidNumeric = errors.New("not a valid number")
)

// Submission is a user's answer. Labels carries the picked option
// letters for choice types; Numeric carries the raw input string for
// numerical types.
type Submission struct {
	Labels  []string
	Numeric string
}

// Verdict is the outcome of evaluating one submission. Graded is false
// for subjective questions, whose Correct and Score fields carry no
// meaning.
type Verdict struct {
	Correct bool
	Score   int
	Graded  bool
}

// Evaluate scores a submission against the question.
func Evaluate(q *bank.Question, sub Submission) (Verdict, error) {
	switch q.Type {
	case bank.TypeSingleCorrect:
		return evaluateSingle(q, sub.Labels)
	case bank.TypeMultipleCorrect:
		return evaluateMultiple(q, sub.Labels)
	case bank.TypeNumerical:
		return evaluateNumerical(q, sub.Numeric)
	case bank.TypeSubjective:
		return Verdict{Graded: false}, nil
	default:
		return Verdict{}, fmt.Errorf("unknown question type %q", q.Type)
	}
}

func evaluateSingle(q *bank.Question, labels []string) (Verdict, error) {
	if len(labels) == 0 {
		return Verdict{}, ErrNoSubmission
	}
	if len(labels) != 1 {
		return Verdict{}, fmt.Errorf("single-correct question takes one label, got %d", len(labels))
	}
	if normalizeLabel(labels[0]) == q.CorrectLabel() {
		return Verdict{Correct: true, Score: marksCorrect, Graded: true}, nil
	}
	return Verdict{Correct: false, Score: marksWrongSingle, Graded: true}, nil
}

func evaluateMultiple(q *bank.Question, labels []string) (Verdict, error) {
	correct := make(map[string]bool, len(q.CorrectLabels))
	for _, l := range q.CorrectLabels {
		correct[l] = true
	}

	picked := make(map[string]bool, len(labels))
	for _, l := range labels {
		picked[normalizeLabel(l)] = true
	}

	// Empty submission: no credit, no penalty.
	if len(picked) == 0 {
		return Verdict{Correct: false, Score: 0, Graded: true}, nil
	}

	// Any wrong pick forfeits partial credit and incurs the penalty.
	for l := range picked {
		if !correct[l] {
			return Verdict{Correct: false, Score: marksWrongMulti, Graded: true}, nil
		}
	}

	if len(picked) == len(correct) {
		return Verdict{Correct: true, Score: marksCorrect, Graded: true}, nil
	}

	// Non-empty proper subset of the correct set: proportional credit,
	// floored, never exceeding full marks.
	partial := int(math.Floor(float64(len(picked)) / float64(len(correct)) * marksCorrect))
	return Verdict{Correct: false, Score: partial, Graded: true}, nil
}

func evaluateNumerical(q *bank.Question, input string) (Verdict, error) {
	v, err := ParseNumeric(input)
	if err != nil {
		return Verdict{}, err
	}
	if math.Abs(v-q.CorrectValue) < Tolerance {
		return Verdict{Correct: true, Score: marksCorrect, Graded: true}, nil
	}
	// No negative marking for numerical questions.
	return Verdict{Correct: false, Score: 0, Graded: true}, nil
}

// ParseNumeric parses a numerical answer, trimming whitespace. An empty
// string is ErrNoSubmission; anything unparseable is ErrInvalidNumeric.
func ParseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNoSubmission
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumeric, s)
	}
	return v, nil
}

// normalizeLabel upper-cases and trims a submitted option letter.
func normalizeLabel(l string) string {
	return strings.ToUpper(strings.TrimSpace(l))
}
