package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zoomieband/internal/domain/profile"
)

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

	var p profile.Profile
	if err := row.Scan(&p.Name, &p.Breed, &p.Birthday, &p.Version, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, p profile.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_profile (id, name, breed, birthday, version, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			breed = EXCLUDED.breed,
			birthday = EXCLUDED.birthday,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`,
		p.Name,
		p.Breed,
		p.Birthday,
		p.Version,
		p.UpdatedAt,
	)
	return err
}
