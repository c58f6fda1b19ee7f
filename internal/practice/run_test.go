package practice

import (
	"testing"

	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/evaluate"
)

func testQuestions() []bank.Question {
	return []bank.Question{
		{
			ID:   "q1",
			Type: bank.TypeSingleCorrect,
			Options: []bank.Option{
				{Label: "A", Text: "2 m/s", Correct: true},
				{Label: "B", Text: "4 m/s"},
			},
			CorrectLabels: []string{"A"},
		},
		{
			ID:   "q2",
			Type: bank.TypeMultipleCorrect,
			Options: []bank.Option{
				{Label: "A", Correct: true},
				{Label: "B", Correct: true},
				{Label: "C"},
			},
			CorrectLabels: []string{"A", "B"},
		},
		{
			ID:           "q3",
			Type:         bank.TypeNumerical,
			CorrectValue: 9.8,
		},
		{
			ID:   "q4",
			Type: bank.TypeSubjective,
		},
	}
}

func testRun() *Run {
	return NewRun("physics", "kinematics", testQuestions())
}

func TestNewRun(t *testing.T) {
	r := testRun()

	if r.ID == "" {
		t.Error("expected a run ID")
	}
	if r.Index != 0 {
		t.Errorf("Index = %d, want 0", r.Index)
	}
	q := r.Current()
	if q == nil || q.ID != "q1" {
		t.Errorf("Current() = %v, want q1", q)
	}
}

func TestNavigation(t *testing.T) {
	r := testRun()

	if r.Prev() {
		t.Error("Prev at start should fail")
	}
	if !r.Next() || r.Current().ID != "q2" {
		t.Errorf("Next should move to q2, at %v", r.Current())
	}
	if !r.Prev() || r.Current().ID != "q1" {
		t.Errorf("Prev should move back to q1, at %v", r.Current())
	}

	if !r.Seek(3) || r.Current().ID != "q4" {
		t.Errorf("Seek(3) should land on q4, at %v", r.Current())
	}
	if r.Next() {
		t.Error("Next at end should fail")
	}
	if r.Seek(4) {
		t.Error("Seek past end should fail")
	}
	if r.Seek(-1) {
		t.Error("Seek before start should fail")
	}
}

func TestSubmitRecordsResult(t *testing.T) {
	r := testRun()

	v, err := r.Submit(evaluate.Submission{Labels: []string{"A"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !v.Correct || v.Score != 4 {
		t.Errorf("verdict = %+v, want correct +4", v)
	}

	res := r.ResultFor("q1")
	if res == nil {
		t.Fatal("expected recorded result for q1")
	}
	if !res.Verdict.Correct {
		t.Error("recorded verdict should be correct")
	}
	if r.Attempted() != 1 {
		t.Errorf("Attempted() = %d, want 1", r.Attempted())
	}
}

func TestResubmitOverwrites(t *testing.T) {
	r := testRun()

	if _, err := r.Submit(evaluate.Submission{Labels: []string{"B"}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := r.Submit(evaluate.Submission{Labels: []string{"A"}}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if r.Attempted() != 1 {
		t.Errorf("Attempted() = %d, want 1 after resubmission", r.Attempted())
	}
	if res := r.ResultFor("q1"); res == nil || !res.Verdict.Correct {
		t.Errorf("expected latest result to win, got %+v", res)
	}
}

func TestSubmitEmptyRun(t *testing.T) {
	r := NewRun("physics", "kinematics", nil)

	if q := r.Current(); q != nil {
		t.Errorf("Current() on empty run = %v, want nil", q)
	}
	if _, err := r.Submit(evaluate.Submission{Labels: []string{"A"}}); err == nil {
		t.Error("expected error submitting to empty run")
	}
}

func TestBuildSummary(t *testing.T) {
	r := testRun()

	// q1 correct, q2 partial subset, q3 skipped, q4 subjective.
	if _, err := r.Submit(evaluate.Submission{Labels: []string{"A"}}); err != nil {
		t.Fatalf("submit q1: %v", err)
	}
	r.Next()
	if _, err := r.Submit(evaluate.Submission{Labels: []string{"A"}}); err != nil {
		t.Fatalf("submit q2: %v", err)
	}
	r.Seek(3)
	if _, err := r.Submit(evaluate.Submission{}); err != nil {
		t.Fatalf("submit q4: %v", err)
	}

	s := BuildSummary(r)
	if s.Total != 4 || s.Attempted != 3 {
		t.Errorf("Total = %d, Attempted = %d; want 4, 3", s.Total, s.Attempted)
	}
	if s.Correct != 1 {
		t.Errorf("Correct = %d, want 1", s.Correct)
	}
	// +4 for q1, +2 partial for q2 (1 of 2 correct picked).
	if s.Score != 6 {
		t.Errorf("Score = %d, want 6", s.Score)
	}
	if s.Ungraded != 1 {
		t.Errorf("Ungraded = %d, want 1", s.Ungraded)
	}
	if s.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", s.Accuracy)
	}

	if len(s.ByType) != 2 {
		t.Fatalf("ByType has %d entries, want 2", len(s.ByType))
	}
	if s.ByType[0].Type != bank.TypeSingleCorrect || s.ByType[0].Score != 4 {
		t.Errorf("unexpected first type result: %+v", s.ByType[0])
	}
	if s.ByType[1].Type != bank.TypeMultipleCorrect || s.ByType[1].Score != 2 {
		t.Errorf("unexpected second type result: %+v", s.ByType[1])
	}
}
