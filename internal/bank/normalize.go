package bank

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The question banks accumulated several incompatible encodings for the
// same fields as they were scraped and re-exported over the years. This
// file reconciles all known shapes into the canonical Question model:
//
//   - options as a list of strings, a list of {text,image,isCorrect}
//     objects, or an object keyed by small integers
//   - the correct answer as a letter, a zero-based index, an array of
//     either, or implicit in per-option isCorrect flags
//   - prompt text at question_text or nested at question.text
//   - explanation at explanation, solution_text, or solution.text
//
// Missing text fields degrade to "" and never fail; structural
// violations (too many options, unresolvable correct answer) fail with
// a *ValidationError.

// rawQuestion mirrors a bank entry before normalization. Fields that
// vary in shape stay as json.RawMessage.
type rawQuestion struct {
	QuestionID    string          `json:"question_id"`
	Type          string          `json:"type"`
	Level         int             `json:"level"`
	QuestionText  string          `json:"question_text"`
	Question      *rawContent     `json:"question"`
	Image         string          `json:"image"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	CorrectValue  json.RawMessage `json:"correct_value"`
	Explanation   string          `json:"explanation"`
	SolutionText  string          `json:"solution_text"`
	Solution      *rawContent     `json:"solution"`
}

// rawContent is a nested {text, image} block.
type rawContent struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// rawOption is the object form of a single option.
type rawOption struct {
	Text      string `json:"text"`
	Image     string `json:"image"`
	IsCorrect bool   `json:"isCorrect"`
}

var indexAnswerRe = regexp.MustCompile(`^[0-3]$`)

// normalizeQuestion converts one raw bank entry into a canonical
// Question.
func normalizeQuestion(raw rawQuestion) (Question, error) {
	q := Question{
		ID:          raw.QuestionID,
		Type:        normalizeType(raw.Type),
		Level:       raw.Level,
		Prompt:      promptText(raw),
		Image:       imageRef(raw),
		Explanation: explanationText(raw),
	}

	opts, err := normalizeOptions(raw.Options)
	if err != nil {
		if verr, ok := err.(*ValidationError); ok {
			verr.QuestionID = raw.QuestionID
		}
		return Question{}, err
	}
	q.Options = opts

	switch q.Type {
	case TypeSingleCorrect, TypeMultipleCorrect:
		labels := resolveCorrectLabels(raw.CorrectAnswer, opts)
		if len(labels) == 0 {
			return Question{}, &ValidationError{
				QuestionID: raw.QuestionID,
				Reason:     "no correct option resolvable",
			}
		}
		if q.Type == TypeSingleCorrect && len(labels) != 1 {
			return Question{}, &ValidationError{
				QuestionID: raw.QuestionID,
				Reason:     fmt.Sprintf("single-correct question resolved %d correct options", len(labels)),
			}
		}
		q.CorrectLabels = labels
		markCorrect(q.Options, labels)

	case TypeNumerical:
		v, ok := numericValue(raw.CorrectValue)
		if !ok {
			v, ok = numericValue(raw.CorrectAnswer)
		}
		if !ok {
			return Question{}, &ValidationError{
				QuestionID: raw.QuestionID,
				Reason:     "numerical question has no parseable correct value",
			}
		}
		q.CorrectValue = v
	}

	return q, nil
}

// normalizeType maps the type aliases seen in the banks. "mcq" is the
// legacy name for single-correct and also the default for untyped
// entries.
func normalizeType(t string) QuestionType {
	switch t {
	case "singleCorrect", "mcq", "":
		return TypeSingleCorrect
	case "multipleCorrect":
		return TypeMultipleCorrect
	case "numerical":
		return TypeNumerical
	case "subjective":
		return TypeSubjective
	default:
		return TypeSingleCorrect
	}
}

// normalizeOptions resolves every known option-list shape into an
// ordered []Option with positional letter labels.
func normalizeOptions(raw json.RawMessage) ([]Option, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	// Ordered list: elements may be plain strings or option objects,
	// and the two have been observed mixed within one list.
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		return optionsFromList(elems)
	}

	// Object keyed by small integers ("0", "1", ...).
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err == nil {
		return optionsFromKeyedObject(keyed)
	}

	return nil, &ValidationError{Reason: "unrecognized options shape"}
}

func optionsFromList(elems []json.RawMessage) ([]Option, error) {
	if len(elems) > MaxOptions {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("%d options exceeds the %d-option ceiling", len(elems), MaxOptions),
		}
	}
	opts := make([]Option, 0, len(elems))
	for i, el := range elems {
		opt, err := decodeOption(el)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("option %d: %v", i, err)}
		}
		opt.Label = OptionLabels[i]
		opts = append(opts, opt)
	}
	return opts, nil
}

func optionsFromKeyedObject(keyed map[string]json.RawMessage) ([]Option, error) {
	type entry struct {
		key int
		raw json.RawMessage
	}
	entries := make([]entry, 0, len(keyed))
	for k, v := range keyed {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("non-numeric option key %q", k)}
		}
		entries = append(entries, entry{key: n, raw: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	if len(entries) > MaxOptions {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("%d options exceeds the %d-option ceiling", len(entries), MaxOptions),
		}
	}
	opts := make([]Option, 0, len(entries))
	for i, e := range entries {
		opt, err := decodeOption(e.raw)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("option %q: %v", strconv.Itoa(e.key), err)}
		}
		opt.Label = OptionLabels[i]
		opts = append(opts, opt)
	}
	return opts, nil
}

// decodeOption accepts either a bare string or a {text,image,isCorrect}
// object.
func decodeOption(raw json.RawMessage) (Option, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Option{Text: s}, nil
	}
	var obj rawOption
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Option{}, fmt.Errorf("neither string nor option object")
	}
	return Option{Text: obj.Text, Image: obj.Image, Correct: obj.IsCorrect}, nil
}

// resolveCorrectLabels turns any correct-answer encoding into letter
// labels, falling back to the options' own isCorrect flags. The result
// is in option order and deduplicated.
func resolveCorrectLabels(raw json.RawMessage, opts []Option) []string {
	set := make(map[string]bool)

	var v any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &v)
	}
	switch val := v.(type) {
	case string:
		if l := answerToLabel(val); l != "" {
			set[l] = true
		}
	case float64:
		if l := indexToLabel(int(val)); l != "" {
			set[l] = true
		}
	case []any:
		for _, el := range val {
			switch e := el.(type) {
			case string:
				if l := answerToLabel(e); l != "" {
					set[l] = true
				}
			case float64:
				if l := indexToLabel(int(e)); l != "" {
					set[l] = true
				}
			}
		}
	}

	// Implicit encoding: per-option isCorrect flags.
	if len(set) == 0 {
		for _, opt := range opts {
			if opt.Correct {
				set[opt.Label] = true
			}
		}
	}

	var labels []string
	for _, opt := range opts {
		if set[opt.Label] {
			labels = append(labels, opt.Label)
		}
	}
	return labels
}

// answerToLabel maps a letter or zero-based index string to a label.
func answerToLabel(s string) string {
	s = strings.TrimSpace(s)
	if indexAnswerRe.MatchString(s) {
		idx, _ := strconv.Atoi(s)
		return indexToLabel(idx)
	}
	upper := strings.ToUpper(s)
	for _, l := range OptionLabels {
		if upper == l {
			return l
		}
	}
	return ""
}

func indexToLabel(idx int) string {
	if idx < 0 || idx >= len(OptionLabels) {
		return ""
	}
	return OptionLabels[idx]
}

// markCorrect syncs Option.Correct with the resolved label set, so the
// flags are authoritative regardless of which encoding the entry used.
func markCorrect(opts []Option, labels []string) {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	for i := range opts {
		opts[i].Correct = set[opts[i].Label]
	}
}

// numericValue parses a JSON number or numeric string.
func numericValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// promptText tries the known prompt locations in priority order and
// returns "" when none are present.
func promptText(raw rawQuestion) string {
	if raw.QuestionText != "" {
		return raw.QuestionText
	}
	if raw.Question != nil {
		return raw.Question.Text
	}
	return ""
}

func imageRef(raw rawQuestion) string {
	if raw.Image != "" {
		return raw.Image
	}
	if raw.Question != nil {
		return raw.Question.Image
	}
	return ""
}

// explanationText tries explanation, solution_text, then solution.text.
func explanationText(raw rawQuestion) string {
	if raw.Explanation != "" {
		return raw.Explanation
	}
	if raw.SolutionText != "" {
		return raw.SolutionText
	}
	if raw.Solution != nil {
		return raw.Solution.Text
	}
	return ""
}
