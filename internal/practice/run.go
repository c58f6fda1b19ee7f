// Package practice tracks the runtime state of one pass over a list of
// questions: the current position, what has been submitted, and the
// verdicts returned for each submission.
package practice

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/evaluate"
)

// Result pairs a submission with its verdict for one question.
type Result struct {
	QuestionID string
	Submission evaluate.Submission
	Verdict    evaluate.Verdict
	SubmitTime time.Time
}

// Run is the state of one practice pass over a question list. The list
// is fixed at construction; navigation wraps neither end.
type Run struct {
	// ID is the UUID for this run.
	ID string

	// Subject and Chapter identify where the questions came from, for
	// display and bookmark snapshots.
	Subject string
	Chapter string

	// Questions is the ordered list being practiced.
	Questions []bank.Question

	// Index is the current position in Questions.
	Index int

	// Results maps question ID to the latest submission result. A
	// resubmission overwrites.
	Results map[string]Result

	// StartTime is when the run began.
	StartTime time.Time
}

// NewRun creates a run over the given questions starting at the first.
func NewRun(subject, chapter string, questions []bank.Question) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Subject:   subject,
		Chapter:   chapter,
		Questions: questions,
		Results:   make(map[string]Result),
		StartTime: time.Now(),
	}
}

// Current returns the question at the run position, or nil when the
// list is empty.
func (r *Run) Current() *bank.Question {
	if len(r.Questions) == 0 {
		return nil
	}
	return &r.Questions[r.Index]
}

// Next advances to the following question. Returns false at the end.
func (r *Run) Next() bool {
	if r.Index+1 >= len(r.Questions) {
		return false
	}
	r.Index++
	return true
}

// Prev moves back one question. Returns false at the start.
func (r *Run) Prev() bool {
	if r.Index <= 0 {
		return false
	}
	r.Index--
	return true
}

// Seek jumps to position i. Returns false when out of range.
func (r *Run) Seek(i int) bool {
	if i < 0 || i >= len(r.Questions) {
		return false
	}
	r.Index = i
	return true
}

// Submit evaluates sub against the current question, records the
// result, and returns the verdict.
func (r *Run) Submit(sub evaluate.Submission) (evaluate.Verdict, error) {
	q := r.Current()
	if q == nil {
		return evaluate.Verdict{}, evaluate.ErrNoSubmission
	}

	verdict, err := evaluate.Evaluate(q, sub)
	if err != nil {
		return evaluate.Verdict{}, err
	}

	r.Results[q.ID] = Result{
		QuestionID: q.ID,
		Submission: sub,
		Verdict:    verdict,
		SubmitTime: time.Now(),
	}
	return verdict, nil
}

// ResultFor returns the recorded result for a question, or nil if it
// has not been submitted in this run.
func (r *Run) ResultFor(questionID string) *Result {
	res, ok := r.Results[questionID]
	if !ok {
		return nil
	}
	return &res
}

// Attempted returns how many distinct questions have a result.
func (r *Run) Attempted() int {
	return len(r.Results)
}
