package progress

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps attempts and bookmarks in process memory. It backs
// the --ephemeral flag and tests that don't need a database file.
type MemoryStore struct {
	mu        sync.Mutex
	attempts  map[string]map[string]Attempt  // collection -> question ID
	bookmarks map[string]map[string]Bookmark // collection -> question ID
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		attempts:  make(map[string]map[string]Attempt),
		bookmarks: make(map[string]map[string]Bookmark),
	}
}

// Attempts returns the in-memory AttemptRepo.
func (m *MemoryStore) Attempts() AttemptRepo {
	return (*memAttemptRepo)(m)
}

// Bookmarks returns the in-memory BookmarkRepo.
func (m *MemoryStore) Bookmarks() BookmarkRepo {
	return (*memBookmarkRepo)(m)
}

type memAttemptRepo MemoryStore

func (r *memAttemptRepo) Record(_ context.Context, collection string, a Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	if r.attempts[collection] == nil {
		r.attempts[collection] = make(map[string]Attempt)
	}
	r.attempts[collection][a.QuestionID] = a
	return nil
}

func (r *memAttemptRepo) Get(_ context.Context, collection, questionID string) (*Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.attempts[collection][questionID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memAttemptRepo) List(_ context.Context, collection string) (map[string]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Attempt, len(r.attempts[collection]))
	for id, a := range r.attempts[collection] {
		out[id] = a
	}
	return out, nil
}

func (r *memAttemptRepo) ClearAll(_ context.Context, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.attempts, collection)
	return nil
}

type memBookmarkRepo MemoryStore

func (r *memBookmarkRepo) Toggle(_ context.Context, collection string, b Bookmark) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[collection][b.QuestionID]; ok {
		delete(r.bookmarks[collection], b.QuestionID)
		return false, nil
	}

	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	if r.bookmarks[collection] == nil {
		r.bookmarks[collection] = make(map[string]Bookmark)
	}
	r.bookmarks[collection][b.QuestionID] = b
	return true, nil
}

func (r *memBookmarkRepo) Has(_ context.Context, collection, questionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.bookmarks[collection][questionID]
	return ok, nil
}

func (r *memBookmarkRepo) List(_ context.Context, collection string) ([]Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Bookmark, 0, len(r.bookmarks[collection]))
	for _, b := range r.bookmarks[collection] {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	return out, nil
}
