package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

type Migration struct {
	Version string
	Up      string
}

var AllMigrations = []Migration{
	{Version: "1.0.0", Up: migrationV1Up},
	{Version: "1.1.0", Up: migrationV11Up},
}

const migrationV1Up = `
CREATE TABLE IF NOT EXISTS app_flags (
    key TEXT PRIMARY KEY,
    value BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS pet_profile (
    id SMALLINT PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    breed TEXT NOT NULL,
    birthday TIMESTAMPTZ NOT NULL,
    version BIGINT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS day_activity (
    id UUID PRIMARY KEY,
    day DATE NOT NULL UNIQUE,
    steps INTEGER NOT NULL CHECK (steps >= 0),
    distance_km DOUBLE PRECISION NOT NULL CHECK (distance_km >= 0),
    active_hours DOUBLE PRECISION NOT NULL CHECK (active_hours >= 0),
    calories INTEGER NOT NULL CHECK (calories >= 0),
    recorded_at TIMESTAMPTZ NOT NULL
);
`

const migrationV11Up = `
CREATE TABLE IF NOT EXISTS play_tasks (
    id UUID PRIMARY KEY,
    label TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS community_posts (
    id UUID PRIMARY KEY,
    pet_name TEXT NOT NULL,
    activity_title TEXT NOT NULL,
    distance TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    pace TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    image_name TEXT NOT NULL DEFAULT '',
    kudos INTEGER NOT NULL DEFAULT 0 CHECK (kudos >= 0),
    comments INTEGER NOT NULL DEFAULT 0 CHECK (comments >= 0),
    liked BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS community_posts_created_at_idx ON community_posts (created_at DESC);
`

// Migrate aplica en orden las migraciones con versión mayor a la registrada.
// Devuelve la versión final del schema.
func Migrate(ctx context.Context, db *sql.DB) (string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return "", fmt.Errorf("create schema_version: %w", err)
	}

	current, err := currentVersion(ctx, db)
	if err != nil {
		return "", err
	}

	for _, m := range AllMigrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return "", fmt.Errorf("invalid migration version %s: %w", m.Version, err)
		}
		if !current.LessThan(v) {
			continue
		}

		if err := applyOne(ctx, db, m); err != nil {
			return "", err
		}
		current = v
	}
	return current.String(), nil
}

// applyOne corre la migración y la registra en la misma transacción.
func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("apply migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.Version); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Version, err)
	}
	return tx.Commit()
}

func currentVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return nil, fmt.Errorf("read schema_version: %w", err)
	}
	defer rows.Close()

	current := semver.MustParse("0.0.0")
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %s: %w", s, err)
		}
		if v.GreaterThan(current) {
			current = v
		}
	}
	return current, rows.Err()
}
