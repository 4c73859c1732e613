package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"zoomieband/internal/domain/profile"
)

// ProfileRepo persiste el snapshot en la fila única de pet_profile.
// Los tiempos van como texto RFC3339Nano para no perder la zona.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Load(ctx context.Context) (profile.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, breed, birthday, version, updated_at
		FROM pet_profile
		WHERE id = 1
	`)

	var (
		p                   profile.Profile
		birthday, updatedAt string
	)
	if err := row.Scan(&p.Name, &p.Breed, &birthday, &p.Version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}

	var err error
	if p.Birthday, err = time.Parse(time.RFC3339Nano, birthday); err != nil {
		return profile.Profile{}, fmt.Errorf("parse birthday: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return profile.Profile{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p profile.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_profile (id, name, breed, birthday, version, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			breed = excluded.breed,
			birthday = excluded.birthday,
			version = excluded.version,
			updated_at = excluded.updated_at
	`,
		p.Name,
		p.Breed,
		p.Birthday.Format(time.RFC3339Nano),
		p.Version,
		p.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}
