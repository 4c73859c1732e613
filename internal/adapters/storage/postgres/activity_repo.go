package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"zoomieband/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Upsert: day es UNIQUE, el segundo registro del día pisa al primero.
func (r *ActivityRepo) Upsert(ctx context.Context, a activity.DayActivity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO day_activity (
			id, day, steps, distance_km, active_hours, calories, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (day) DO UPDATE SET
			steps = EXCLUDED.steps,
			distance_km = EXCLUDED.distance_km,
			active_hours = EXCLUDED.active_hours,
			calories = EXCLUDED.calories,
			recorded_at = EXCLUDED.recorded_at
	`,
		a.ID,
		a.Day.Format(activity.DayLayout),
		a.Steps,
		a.DistanceKm,
		a.ActiveHours,
		a.Calories,
		a.RecordedAt,
	)
	return err
}

func (r *ActivityRepo) GetByDay(ctx context.Context, day time.Time) (activity.DayActivity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, day, steps, distance_km, active_hours, calories, recorded_at
		FROM day_activity
		WHERE day = $1
	`, day.Format(activity.DayLayout))

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return activity.DayActivity{}, activity.ErrNotFound
	}
	return a, err
}

func (r *ActivityRepo) ListBetween(ctx context.Context, from, to time.Time) ([]activity.DayActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, steps, distance_km, active_hours, calories, recorded_at
		FROM day_activity
		WHERE day BETWEEN $1 AND $2
		ORDER BY day DESC
	`, from.Format(activity.DayLayout), to.Format(activity.DayLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.DayActivity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(s rowScanner) (activity.DayActivity, error) {
	var a activity.DayActivity
	if err := s.Scan(
		&a.ID,
		&a.Day,
		&a.Steps,
		&a.DistanceKm,
		&a.ActiveHours,
		&a.Calories,
		&a.RecordedAt,
	); err != nil {
		return activity.DayActivity{}, err
	}
	// ojo: DATE vuelve como medianoche UTC desde pgx; normalizamos igual
	a.Day = activity.DayOf(a.Day)
	return a, nil
}
