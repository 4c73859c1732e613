package sqlite

import (
	"context"
	"database/sql"
	"errors"
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
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS app_flags (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

-- una sola fila: el perfil de la mascota
CREATE TABLE IF NOT EXISTS pet_profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    breed TEXT NOT NULL,
    birthday TEXT NOT NULL,
    version INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);
`

// tiempos como texto UTC de ancho fijo (ver timeLayout) para que ORDER BY funcione
const migrationV11Up = `
CREATE TABLE IF NOT EXISTS day_activity (
    id TEXT PRIMARY KEY,
    day TEXT NOT NULL UNIQUE,
    steps INTEGER NOT NULL CHECK (steps >= 0),
    distance_km REAL NOT NULL CHECK (distance_km >= 0),
    active_hours REAL NOT NULL CHECK (active_hours >= 0),
    calories INTEGER NOT NULL CHECK (calories >= 0),
    recorded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS play_tasks (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS community_posts (
    id TEXT PRIMARY KEY,
    pet_name TEXT NOT NULL,
    activity_title TEXT NOT NULL,
    distance TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    pace TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    image_name TEXT NOT NULL DEFAULT '',
    kudos INTEGER NOT NULL DEFAULT 0 CHECK (kudos >= 0),
    comments INTEGER NOT NULL DEFAULT 0 CHECK (comments >= 0),
    liked INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
`

// ApplyMigrations corre, en orden, las migraciones con versión mayor a la aplicada.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	current, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range AllMigrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", m.Version, err)
		}
		if !current.LessThan(v) {
			continue
		}

		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.Version, err)
		}
		current = v
	}
	return nil
}

// SchemaVersion devuelve la última versión aplicada ("0.0.0" si la base está vacía).
func SchemaVersion(ctx context.Context, db *sql.DB) (string, error) {
	v, err := currentVersion(ctx, db)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func currentVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	zero := semver.MustParse("0.0.0")

	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check schema_version table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return nil, fmt.Errorf("read schema_version: %w", err)
	}
	defer rows.Close()

	current := zero
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
