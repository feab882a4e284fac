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

// Todo is one item of the to-do list.
type Todo struct {
	ID        string
	Text      string
	Done      bool
	Position  int
	CreatedAt time.Time
}

// TodoRepo handles todos.
type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo { return &TodoRepo{db: db} }

// List returns every item in insertion order.
func (r *TodoRepo) List(ctx context.Context) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, text, done, position, created_at FROM todos ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	var out []Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Add appends an item with the given text.
func (r *TodoRepo) Add(ctx context.Context, text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, errors.New("todo text cannot be empty")
	}
	t := Todo{ID: uuid.NewString(), Text: text, CreatedAt: Now()}
	err := WithTx(r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM todos`).Scan(&t.Position); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO todos(id, text, done, position, created_at) VALUES (?, ?, 0, ?, ?)`,
			t.ID, t.Text, t.Position, formatTime(t.CreatedAt))
		return err
	})
	if err != nil {
		return Todo{}, fmt.Errorf("add todo: %w", err)
	}
	return t, nil
}

// Toggle flips the done flag of id and returns the updated item.
func (r *TodoRepo) Toggle(ctx context.Context, id string) (Todo, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET done = 1 - done WHERE id = ?`, id)
	if err != nil {
		return Todo{}, fmt.Errorf("toggle todo: %w", err)
	}
	if err := expectOne(res); err != nil {
		return Todo{}, fmt.Errorf("toggle todo %s: %w", id, err)
	}
	return r.Get(ctx, id)
}

// Get loads one item.
func (r *TodoRepo) Get(ctx context.Context, id string) (Todo, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, text, done, position, created_at FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return t, err
}

// Delete removes id.
func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var (
		t       Todo
		done    int
		created string
	)
	if err := s.Scan(&t.ID, &t.Text, &done, &t.Position, &created); err != nil {
		return Todo{}, err
	}
	t.Done = done != 0
	ts, err := parseTime(created)
	if err != nil {
		return Todo{}, err
	}
	t.CreatedAt = ts
	return t, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
