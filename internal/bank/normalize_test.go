package bank

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustNormalize(t *testing.T, src string) Question {
	t.Helper()
	var raw rawQuestion
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("parse raw question: %v", err)
	}
	q, err := normalizeQuestion(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return q
}

func TestNormalizeOptionShapes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []string // option text in label order
		correct string   // resolved single correct label
	}{
		{
			name: "string list with letter answer",
			src: `{"question_id":"q1","type":"singleCorrect","options":["x","y"],
			       "correct_answer":"B"}`,
			want:    []string{"x", "y"},
			correct: "B",
		},
		{
			name: "object list with isCorrect flags",
			src: `{"question_id":"q2","type":"singleCorrect",
			       "options":[{"text":"x","isCorrect":false},{"text":"y","isCorrect":true}]}`,
			want:    []string{"x", "y"},
			correct: "B",
		},
		{
			name: "numeric-keyed object with index answer",
			src: `{"question_id":"q3","type":"singleCorrect",
			       "options":{"1":"y","0":"x","2":"z"},"correct_answer":"1"}`,
			want:    []string{"x", "y", "z"},
			correct: "B",
		},
		{
			name: "mixed string and object elements",
			src: `{"question_id":"q4","type":"singleCorrect",
			       "options":["x",{"text":"y","isCorrect":true}]}`,
			want:    []string{"x", "y"},
			correct: "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustNormalize(t, tt.src)
			if len(q.Options) != len(tt.want) {
				t.Fatalf("got %d options, want %d", len(q.Options), len(tt.want))
			}
			for i, text := range tt.want {
				if q.Options[i].Text != text {
					t.Errorf("option %d text = %q, want %q", i, q.Options[i].Text, text)
				}
				if q.Options[i].Label != OptionLabels[i] {
					t.Errorf("option %d label = %q, want %q", i, q.Options[i].Label, OptionLabels[i])
				}
			}
			if got := q.CorrectLabel(); got != tt.correct {
				t.Errorf("correct label = %q, want %q", got, tt.correct)
			}
		})
	}
}

func TestNormalizeEquivalentEncodings(t *testing.T) {
	// The same question encoded two ways must normalize identically.
	a := mustNormalize(t, `{"question_id":"q","type":"singleCorrect",
		"options":["x","y"],"correct_answer":"B"}`)
	b := mustNormalize(t, `{"question_id":"q","type":"singleCorrect",
		"options":[{"text":"x","isCorrect":false},{"text":"y","isCorrect":true}]}`)

	if a.CorrectLabel() != "B" || b.CorrectLabel() != "B" {
		t.Fatalf("correct labels = %q / %q, want B / B", a.CorrectLabel(), b.CorrectLabel())
	}
	for i := range a.Options {
		if a.Options[i].Text != b.Options[i].Text ||
			a.Options[i].Label != b.Options[i].Label ||
			a.Options[i].Correct != b.Options[i].Correct {
			t.Errorf("option %d differs between encodings: %+v vs %+v",
				i, a.Options[i], b.Options[i])
		}
	}
}

func TestNormalizeCorrectAnswerArray(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "letter array",
			src: `{"question_id":"q","type":"multipleCorrect",
			       "options":["a","b","c","d"],"correct_answer":["A","C"]}`,
			want: []string{"A", "C"},
		},
		{
			name: "index-string array",
			src: `{"question_id":"q","type":"multipleCorrect",
			       "options":["a","b","c","d"],"correct_answer":["0","2"]}`,
			want: []string{"A", "C"},
		},
		{
			name: "numeric array",
			src: `{"question_id":"q","type":"multipleCorrect",
			       "options":["a","b","c","d"],"correct_answer":[0,2]}`,
			want: []string{"A", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustNormalize(t, tt.src)
			if len(q.CorrectLabels) != len(tt.want) {
				t.Fatalf("correct labels = %v, want %v", q.CorrectLabels, tt.want)
			}
			for i, l := range tt.want {
				if q.CorrectLabels[i] != l {
					t.Errorf("correct labels = %v, want %v", q.CorrectLabels, tt.want)
					break
				}
			}
		})
	}
}

func TestNormalizeTextAliases(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		prompt      string
		explanation string
	}{
		{
			name:   "question_text wins over nested",
			src:    `{"question_id":"q","type":"subjective","question_text":"flat","question":{"text":"nested"}}`,
			prompt: "flat",
		},
		{
			name:   "nested question.text",
			src:    `{"question_id":"q","type":"subjective","question":{"text":"nested"}}`,
			prompt: "nested",
		},
		{
			name:        "explanation wins over solution_text",
			src:         `{"question_id":"q","type":"subjective","explanation":"e","solution_text":"s"}`,
			explanation: "e",
		},
		{
			name:        "solution_text wins over solution.text",
			src:         `{"question_id":"q","type":"subjective","solution_text":"s","solution":{"text":"n"}}`,
			explanation: "s",
		},
		{
			name:        "nested solution.text",
			src:         `{"question_id":"q","type":"subjective","solution":{"text":"n"}}`,
			explanation: "n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustNormalize(t, tt.src)
			if q.Prompt != tt.prompt {
				t.Errorf("prompt = %q, want %q", q.Prompt, tt.prompt)
			}
			if q.Explanation != tt.explanation {
				t.Errorf("explanation = %q, want %q", q.Explanation, tt.explanation)
			}
		})
	}
}

func TestNormalizeMissingTextFieldsDoesNotFail(t *testing.T) {
	// A malformed entry with none of the known text aliases degrades to
	// an empty prompt instead of failing the load.
	q := mustNormalize(t, `{"question_id":"q","type":"subjective","level":1}`)
	if q.Prompt != "" {
		t.Errorf("prompt = %q, want empty", q.Prompt)
	}
	if q.Explanation != "" {
		t.Errorf("explanation = %q, want empty", q.Explanation)
	}
}

func TestNormalizeOptionCeiling(t *testing.T) {
	src := `{"question_id":"q9","type":"singleCorrect",
		"options":["1","2","3","4","5","6","7","8","9"],"correct_answer":"A"}`
	var raw rawQuestion
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err := normalizeQuestion(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.QuestionID != "q9" {
		t.Errorf("question id = %q, want q9", verr.QuestionID)
	}
}

func TestNormalizeSingleCorrectInvariant(t *testing.T) {
	// Exactly one correct option for single-correct.
	src := `{"question_id":"q","type":"singleCorrect",
		"options":[{"text":"x","isCorrect":true},{"text":"y","isCorrect":true}]}`
	var raw rawQuestion
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := normalizeQuestion(raw); err == nil {
		t.Fatal("expected validation error for two correct options")
	}
}

func TestNormalizeNumericalValue(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"string value", `{"question_id":"q","type":"numerical","correct_value":"4.5"}`, 4.5},
		{"number value", `{"question_id":"q","type":"numerical","correct_value":4.5}`, 4.5},
		{"correct_answer fallback", `{"question_id":"q","type":"numerical","correct_answer":"25"}`, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustNormalize(t, tt.src)
			if q.CorrectValue != tt.want {
				t.Errorf("correct value = %v, want %v", q.CorrectValue, tt.want)
			}
		})
	}
}

func TestNormalizeNumericalMissingValue(t *testing.T) {
	src := `{"question_id":"q","type":"numerical","question_text":"?"}`
	var raw rawQuestion
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := normalizeQuestion(raw); err == nil {
		t.Fatal("expected validation error for missing correct value")
	}
}

func TestNormalizeTypeAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want QuestionType
	}{
		{"mcq", TypeSingleCorrect},
		{"", TypeSingleCorrect},
		{"singleCorrect", TypeSingleCorrect},
		{"multipleCorrect", TypeMultipleCorrect},
		{"numerical", TypeNumerical},
		{"subjective", TypeSubjective},
	}
	for _, tt := range tests {
		if got := normalizeType(tt.raw); got != tt.want {
			t.Errorf("normalizeType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
