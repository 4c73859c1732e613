package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			steps = excluded.steps,
			distance_km = excluded.distance_km,
			active_hours = excluded.active_hours,
			calories = excluded.calories,
			recorded_at = excluded.recorded_at
	`,
		a.ID,
		a.Day.Format(activity.DayLayout),
		a.Steps,
		a.DistanceKm,
		a.ActiveHours,
		a.Calories,
		formatTime(a.RecordedAt),
	)
	return err
}

func (r *ActivityRepo) GetByDay(ctx context.Context, day time.Time) (activity.DayActivity, error) {
	row := r.db.QueryRowContext(ctx, selectActivity+` WHERE day = ?`, day.Format(activity.DayLayout))

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return activity.DayActivity{}, activity.ErrNotFound
	}
	return a, err
}

func (r *ActivityRepo) ListBetween(ctx context.Context, from, to time.Time) ([]activity.DayActivity, error) {
	rows, err := r.db.QueryContext(ctx, selectActivity+`
		WHERE day BETWEEN ? AND ?
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

const selectActivity = `
	SELECT id, day, steps, distance_km, active_hours, calories, recorded_at
	FROM day_activity`

func scanActivity(s rowScanner) (activity.DayActivity, error) {
	var (
		a               activity.DayActivity
		day, recordedAt string
	)
	if err := s.Scan(
		&a.ID,
		&day,
		&a.Steps,
		&a.DistanceKm,
		&a.ActiveHours,
		&a.Calories,
		&recordedAt,
	); err != nil {
		return activity.DayActivity{}, err
	}

	var err error
	if a.Day, err = time.Parse(activity.DayLayout, day); err != nil {
		return activity.DayActivity{}, fmt.Errorf("parse day: %w", err)
	}
	if a.RecordedAt, err = parseTime(recordedAt); err != nil {
		return activity.DayActivity{}, fmt.Errorf("parse recorded_at: %w", err)
	}
	return a, nil
}
