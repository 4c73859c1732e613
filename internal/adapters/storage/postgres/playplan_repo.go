package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"zoomieband/internal/domain/playplan"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

func (r *TasksRepo) List(ctx context.Context) ([]playplan.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, completed, position
		FROM play_tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]playplan.Task, 0)
	for rows.Next() {
		var t playplan.Task
		if err := rows.Scan(&t.ID, &t.Label, &t.Completed, &t.Position); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TasksRepo) GetByID(ctx context.Context, id string) (playplan.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return playplan.Task{}, playplan.ErrNotFound
	}

	var t playplan.Task
	err := r.db.QueryRowContext(ctx, `
		SELECT id, label, completed, position
		FROM play_tasks
		WHERE id::text = $1
	`, id).Scan(&t.ID, &t.Label, &t.Completed, &t.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return playplan.Task{}, playplan.ErrNotFound
	}
	return t, err
}

func (r *TasksRepo) Update(ctx context.Context, t playplan.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE play_tasks
		SET label = $2, completed = $3, position = $4
		WHERE id = $1
	`, t.ID, t.Label, t.Completed, t.Position)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return playplan.ErrNotFound
	}
	return nil
}

// ReplaceAll borra e inserta en una transacción: nadie ve el plan a medias.
func (r *TasksRepo) ReplaceAll(ctx context.Context, tasks []playplan.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM play_tasks`); err != nil {
		return err
	}
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO play_tasks (id, label, completed, position)
			VALUES ($1,$2,$3,$4)
		`, t.ID, t.Label, t.Completed, t.Position); err != nil {
			return err
		}
	}
	return tx.Commit()
}
