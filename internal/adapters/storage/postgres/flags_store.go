package postgres

import (
	"context"
	"database/sql"
	"errors"
)

type FlagStore struct {
	db *sql.DB
}

func NewFlagStore(db *sql.DB) *FlagStore {
	return &FlagStore{db: db}
}

func (s *FlagStore) GetBool(ctx context.Context, key string) (bool, error) {
	var v bool
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_flags WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return v, err
}

func (s *FlagStore) SetBool(ctx context.Context, key string, value bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_flags (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	return err
}
