package bank

// QuestionType identifies how a question is answered and scored.
type QuestionType string

const (
	// TypeSingleCorrect has exactly one correct option.
	TypeSingleCorrect QuestionType = "singleCorrect"
	// TypeMultipleCorrect has one or more correct options.
	TypeMultipleCorrect QuestionType = "multipleCorrect"
	// TypeNumerical is answered with a number, compared within a tolerance.
	TypeNumerical QuestionType = "numerical"
	// TypeSubjective has no automatic evaluation.
	TypeSubjective QuestionType = "subjective"
)

// MaxOptions is the option ceiling. Labels run A through H; a question
// with more options fails normalization instead of truncating.
const MaxOptions = 8

// OptionLabels maps option position to its display letter.
var OptionLabels = [MaxOptions]string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Option is a single answer choice. Identity is positional; Label is the
// letter assigned by position and is stable for the lifetime of the bank.
type Option struct {
	Label   string
	Text    string
	Image   string
	Correct bool
}

// Question is the canonical question model after normalization.
type Question struct {
	ID      string
	Type    QuestionType
	Level   int // difficulty 1-3
	Prompt  string
	Image   string
	Options []Option

	// CorrectLabels holds the resolved letter labels for choice types,
	// in option order.
	CorrectLabels []string

	// CorrectValue is the expected answer for numerical questions.
	CorrectValue float64

	Explanation string
}

// Section groups questions within a chapter.
type Section struct {
	Title     string
	Questions []Question
}

// Chapter is a titled list of sections.
type Chapter struct {
	ID       string
	Title    string
	Sections []Section
}

// Subject is a top-level module (physics, chemistry, mathematics).
type Subject struct {
	ID       string
	Title    string
	Chapters []Chapter
}

// Questions returns the chapter's questions with sections flattened,
// preserving section order.
func (c *Chapter) Questions() []Question {
	var qs []Question
	for _, s := range c.Sections {
		qs = append(qs, s.Questions...)
	}
	return qs
}

// CorrectLabel returns the single correct label for single-correct
// questions, or "" if none is resolved.
func (q *Question) CorrectLabel() string {
	if len(q.CorrectLabels) == 0 {
		return ""
	}
	return q.CorrectLabels[0]
}

// ValidationError reports a question-bank entry that violates a
// structural invariant (as opposed to a missing text field, which
// degrades to an empty value).
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return "invalid question: " + e.Reason
	}
	return "invalid question " + e.QuestionID + ": " + e.Reason
}
