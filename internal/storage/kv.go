package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// KV stores string preferences in the preferences table.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV { return &KV{db: db} }

// Get returns the value for key; ok is false when the key has never been set.
func (k *KV) Get(key string) (string, bool, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts key.
func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(`
	INSERT INTO preferences(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, key, value, formatTime(Now()))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
