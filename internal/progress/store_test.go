package progress

import (
	"context"
	"fmt"
	"testing"
	"time"
)

var testDBCounter int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:progress_test_%d?mode=memory&cache=shared", testDBCounter)
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Attempts()

	a := Attempt{
		QuestionID: "q1",
		Answer:     "A",
		Correct:    true,
		Score:      4,
		Level:      2,
		Type:       "singleCorrect",
	}
	if err := repo.Record(ctx, "dpp", a); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Get(ctx, "dpp", "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected attempt, got nil")
	}
	if got.Answer != "A" || !got.Correct || got.Score != 4 || got.Level != 2 {
		t.Errorf("unexpected attempt: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Attempts().Get(context.Background(), "dpp", "absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing attempt, got %+v", got)
	}
}

func TestRecordOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Attempts()

	first := Attempt{QuestionID: "q1", Answer: "B", Correct: false, Score: -1}
	second := Attempt{QuestionID: "q1", Answer: "A", Correct: true, Score: 4}
	if err := repo.Record(ctx, "dpp", first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := repo.Record(ctx, "dpp", second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	all, err := repo.List(ctx, "dpp")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 attempt after overwrite, got %d", len(all))
	}
	if got := all["q1"]; got.Answer != "A" || !got.Correct || got.Score != 4 {
		t.Errorf("expected second attempt to win, got %+v", got)
	}
}

func TestCollectionsIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Attempts()

	if err := repo.Record(ctx, "dpp", Attempt{QuestionID: "q1", Answer: "A", Correct: true, Score: 4}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Get(ctx, "pyq", "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("attempt leaked across collections: %+v", got)
	}

	if err := repo.ClearAll(ctx, "pyq"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = repo.Get(ctx, "dpp", "q1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if got == nil {
		t.Error("clearing one collection should not touch another")
	}
}

func TestClearAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Attempts()

	for i := 0; i < 3; i++ {
		a := Attempt{QuestionID: fmt.Sprintf("q%d", i), Answer: "A", Score: 4, Correct: true}
		if err := repo.Record(ctx, "dpp", a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := repo.ClearAll(ctx, "dpp"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	all, err := repo.List(ctx, "dpp")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty after clear, got %d attempts", len(all))
	}
}

func TestBookmarkToggle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Bookmarks()

	b := Bookmark{QuestionID: "q1", Prompt: "A ball is thrown upward", Subject: "physics", Chapter: "kinematics"}

	on, err := repo.Toggle(ctx, "dpp", b)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !on {
		t.Error("first toggle should bookmark")
	}

	has, err := repo.Has(ctx, "dpp", "q1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !has {
		t.Error("expected bookmark present after toggle on")
	}

	off, err := repo.Toggle(ctx, "dpp", b)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if off {
		t.Error("second toggle should remove the bookmark")
	}

	has, err = repo.Has(ctx, "dpp", "q1")
	if err != nil {
		t.Fatalf("has after toggle off: %v", err)
	}
	if has {
		t.Error("expected bookmark absent after toggle off")
	}
}

func TestBookmarkListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Bookmarks()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"q1", "q2", "q3"} {
		b := Bookmark{QuestionID: id, Prompt: "p", Subject: "s", Chapter: "c", Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if _, err := repo.Toggle(ctx, "dpp", b); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	list, err := repo.List(ctx, "dpp")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(list))
	}
	if list[0].QuestionID != "q3" || list[2].QuestionID != "q1" {
		t.Errorf("expected newest first, got %s, %s, %s",
			list[0].QuestionID, list[1].QuestionID, list[2].QuestionID)
	}
}

func TestComputeStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Attempts()

	attempts := []Attempt{
		{QuestionID: "q1", Answer: "A", Correct: true, Score: 4, Level: 1},
		{QuestionID: "q2", Answer: "B", Correct: false, Score: -1, Level: 1},
		{QuestionID: "q3", Answer: "A,C", Correct: true, Score: 4, Level: 3},
	}
	for _, a := range attempts {
		if err := repo.Record(ctx, "dpp", a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := ComputeStats(ctx, repo, "dpp")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if stats.Attempted != 3 || stats.Correct != 2 || stats.Score != 7 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if len(stats.ByLevel) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(stats.ByLevel))
	}
	if stats.ByLevel[0].Level != 1 || stats.ByLevel[0].Attempted != 2 || stats.ByLevel[0].Correct != 1 {
		t.Errorf("unexpected level 1 stats: %+v", stats.ByLevel[0])
	}
	if stats.ByLevel[1].Level != 3 || stats.ByLevel[1].Attempted != 1 {
		t.Errorf("unexpected level 3 stats: %+v", stats.ByLevel[1])
	}
}

func TestMemoryStoreMatchesBehavior(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.Attempts().Record(ctx, "dpp", Attempt{QuestionID: "q1", Answer: "A", Correct: true, Score: 4}); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := m.Attempts().Get(ctx, "dpp", "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Score != 4 {
		t.Errorf("unexpected attempt: %+v", got)
	}

	on, err := m.Bookmarks().Toggle(ctx, "dpp", Bookmark{QuestionID: "q1"})
	if err != nil || !on {
		t.Fatalf("toggle on: %v, %v", on, err)
	}
	off, err := m.Bookmarks().Toggle(ctx, "dpp", Bookmark{QuestionID: "q1"})
	if err != nil || off {
		t.Fatalf("toggle off: %v, %v", off, err)
	}
}
