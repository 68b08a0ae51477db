package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is one stored note.
type Note struct {
	ID        uuid.UUID
	Text      string
	Tag       string
	Pinned    bool
	CreatedAt time.Time
}

const timeLayout = time.RFC3339

// Add inserts a new note and returns it with its generated ID.
func (s *Store) Add(text, tag string, pinned bool) (Note, error) {
	note := Note{
		ID:        uuid.New(),
		Text:      text,
		Tag:       tag,
		Pinned:    pinned,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO notes (id, text, tag, pinned, created_at) VALUES (?, ?, ?, ?, ?)`,
		note.ID.String(), note.Text, note.Tag, boolToInt(note.Pinned),
		note.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

// List returns notes newest first, pinned notes before the rest, up to
// limit. A non-empty tag filters by exact tag.
func (s *Store) List(tag string, limit int) ([]Note, error) {
	query := `SELECT id, text, tag, pinned, created_at FROM notes`
	var queryArgs []any
	if tag != "" {
		query += ` WHERE tag = ?`
		queryArgs = append(queryArgs, tag)
	}
	query += ` ORDER BY pinned DESC, created_at DESC LIMIT ?`
	queryArgs = append(queryArgs, limit)

	rows, err := s.db.Query(query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// Remove deletes the note with the given ID. Returns whether a note was
// deleted.
func (s *Store) Remove(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of stored notes.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

func scanNote(rows *sql.Rows) (Note, error) {
	var (
		note      Note
		id        string
		pinned    int
		createdAt string
	)
	if err := rows.Scan(&id, &note.Text, &note.Tag, &pinned, &createdAt); err != nil {
		return Note{}, fmt.Errorf("scan note: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Note{}, fmt.Errorf("parse note id: %w", err)
	}
	note.ID = parsed
	note.Pinned = pinned != 0
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Note{}, fmt.Errorf("parse note timestamp: %w", err)
	}
	note.CreatedAt = ts
	return note, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
