package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is one sticky note.
type Note struct {
	ID        string
	Body      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteRepo handles notes.
type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// List returns notes oldest first.
func (r *NoteRepo) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, body, color, created_at, updated_at FROM notes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Create stores a new note.
func (r *NoteRepo) Create(ctx context.Context, body, color string) (Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Note{}, errors.New("note body cannot be empty")
	}
	now := Now()
	n := Note{ID: uuid.NewString(), Body: body, Color: color, CreatedAt: now, UpdatedAt: now}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO notes(id, body, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Body, n.Color, formatTime(n.CreatedAt), formatTime(n.UpdatedAt))
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// UpdateBody replaces the text of id.
func (r *NoteRepo) UpdateBody(ctx context.Context, id, body string) (Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Note{}, errors.New("note body cannot be empty")
	}
	return r.update(ctx, id, `UPDATE notes SET body = ?, updated_at = ? WHERE id = ?`, body)
}

// SetColor changes the colour of id.
func (r *NoteRepo) SetColor(ctx context.Context, id, color string) (Note, error) {
	return r.update(ctx, id, `UPDATE notes SET color = ?, updated_at = ? WHERE id = ?`, color)
}

func (r *NoteRepo) update(ctx context.Context, id, stmt, value string) (Note, error) {
	res, err := r.db.ExecContext(ctx, stmt, value, formatTime(Now()), id)
	if err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	if err := expectOne(res); err != nil {
		return Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	return r.Get(ctx, id)
}

// Get loads one note.
func (r *NoteRepo) Get(ctx context.Context, id string) (Note, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, body, color, created_at, updated_at FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n, err
}

// Delete removes id.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func scanNote(s scanner) (Note, error) {
	var (
		n                Note
		created, updated string
	)
	if err := s.Scan(&n.ID, &n.Body, &n.Color, &created, &updated); err != nil {
		return Note{}, err
	}
	var err error
	if n.CreatedAt, err = parseTime(created); err != nil {
		return Note{}, err
	}
	if n.UpdatedAt, err = parseTime(updated); err != nil {
		return Note{}, err
	}
	return n, nil
}
