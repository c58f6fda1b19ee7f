package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// attemptRepo implements AttemptRepo over SQLite.
type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Record(ctx context.Context, collection string, a Attempt) error {
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (collection, question_id, answer, is_correct, score, level, qtype, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (collection, question_id) DO UPDATE SET
			answer     = excluded.answer,
			is_correct = excluded.is_correct,
			score      = excluded.score,
			level      = excluded.level,
			qtype      = excluded.qtype,
			created_at = excluded.created_at
	`, collection, a.QuestionID, a.Answer, boolToInt(a.Correct), a.Score, a.Level, a.Type, ts)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Get(ctx context.Context, collection, questionID string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT question_id, answer, is_correct, score, level, qtype, created_at
		FROM attempts WHERE collection = ? AND question_id = ?
	`, collection, questionID)

	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) List(ctx context.Context, collection string) (map[string]Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, answer, is_correct, score, level, qtype, created_at
		FROM attempts WHERE collection = ?
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Attempt)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out[a.QuestionID] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) ClearAll(ctx context.Context, collection string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM attempts WHERE collection = ?`, collection)
	if err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

// bookmarkRepo implements BookmarkRepo over SQLite.
type bookmarkRepo struct {
	db *sql.DB
}

func (r *bookmarkRepo) Toggle(ctx context.Context, collection string, b Bookmark) (bool, error) {
	present, err := r.Has(ctx, collection, b.QuestionID)
	if err != nil {
		return false, err
	}

	if present {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM bookmarks WHERE collection = ? AND question_id = ?`,
			collection, b.QuestionID)
		if err != nil {
			return false, fmt.Errorf("remove bookmark: %w", err)
		}
		return false, nil
	}

	ts := b.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (collection, question_id, question_text, subject, chapter, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, collection, b.QuestionID, b.Prompt, b.Subject, b.Chapter, ts)
	if err != nil {
		return false, fmt.Errorf("add bookmark: %w", err)
	}
	return true, nil
}

func (r *bookmarkRepo) Has(ctx context.Context, collection, questionID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookmarks WHERE collection = ? AND question_id = ?`,
		collection, questionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return n > 0, nil
}

func (r *bookmarkRepo) List(ctx context.Context, collection string) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, question_text, subject, chapter, created_at
		FROM bookmarks WHERE collection = ?
		ORDER BY created_at DESC, question_id
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.QuestionID, &b.Prompt, &b.Subject, &b.Chapter, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (*Attempt, error) {
	var a Attempt
	var correct int
	if err := s.Scan(&a.QuestionID, &a.Answer, &correct, &a.Score, &a.Level, &a.Type, &a.Timestamp); err != nil {
		return nil, err
	}
	a.Correct = correct != 0
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
