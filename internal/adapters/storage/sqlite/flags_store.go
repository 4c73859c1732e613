package sqlite

import (
	"context"
	"database/sql"
	"errors"
)

// FlagStore guarda flags booleanas en app_flags. Clave ausente = false.
type FlagStore struct {
	db *sql.DB
}

func NewFlagStore(db *sql.DB) *FlagStore {
	return &FlagStore{db: db}
}

func (s *FlagStore) GetBool(ctx context.Context, key string) (bool, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_flags WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (s *FlagStore) SetBool(ctx context.Context, key string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_flags (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, v)
	return err
}
