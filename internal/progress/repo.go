package progress

import (
	"context"
	"time"
)

// Attempt is the persisted result of one answer submission. Level and
// Type are denormalized from the question so aggregate stats don't need
// the bank loaded.
type Attempt struct {
	QuestionID string
	Answer     string // submitted letters joined with "," or the numeric string
	Correct    bool
	Score      int
	Level      int
	Type       string
	Timestamp  time.Time
}

// Bookmark is a saved question reference with a denormalized snapshot of
// its display fields, since the practice set may not remain loaded.
type Bookmark struct {
	QuestionID string
	Prompt     string
	Subject    string
	Chapter    string
	Timestamp  time.Time
}

// AttemptRepo stores attempt records, upsert-only by question ID within
// a collection.
type AttemptRepo interface {
	// Record upserts the attempt for its question ID, overwriting any
	// prior attempt. The write is synchronous.
	Record(ctx context.Context, collection string, a Attempt) error

	// Get returns the attempt for a question, or nil if absent.
	Get(ctx context.Context, collection, questionID string) (*Attempt, error)

	// List returns all attempts for a collection keyed by question ID.
	List(ctx context.Context, collection string) (map[string]Attempt, error)

	// ClearAll irreversibly deletes every attempt for a collection.
	// Call sites must gate this behind an explicit user confirmation.
	ClearAll(ctx context.Context, collection string) error
}

// BookmarkRepo stores bookmark records per collection.
type BookmarkRepo interface {
	// Toggle flips bookmark presence for b.QuestionID and returns the
	// new state (true = now bookmarked). The snapshot fields of b are
	// stored only when adding.
	Toggle(ctx context.Context, collection string, b Bookmark) (bool, error)

	// Has reports whether a question is bookmarked.
	Has(ctx context.Context, collection, questionID string) (bool, error)

	// List returns all bookmarks for a collection, newest first.
	List(ctx context.Context, collection string) ([]Bookmark, error)
}
