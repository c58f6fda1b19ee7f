package bank

import (
	"sort"
	"strings"
)

// Filters selects questions from an in-memory list. Zero values match
// everything.
type Filters struct {
	Level  int          // 1-3, 0 = any
	Type   QuestionType // "" = any
	Search string       // case-insensitive substring over prompt text
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f.Level == 0 && f.Type == "" && f.Search == ""
}

// Filter returns the questions matching all active criteria, preserving
// input order.
func Filter(qs []Question, f Filters) []Question {
	if f.IsZero() {
		return qs
	}
	needle := strings.ToLower(f.Search)
	var out []Question
	for _, q := range qs {
		if f.Level != 0 && q.Level != f.Level {
			continue
		}
		if f.Type != "" && q.Type != f.Type {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(q.Prompt), needle) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// SortByLevel returns a copy sorted by difficulty ascending. The sort is
// stable so bank order is preserved within a level.
func SortByLevel(qs []Question) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}
