package playplan

import "context"

type Repository interface {
	// List devuelve las tareas ordenadas por Position.
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, t Task) error
	ReplaceAll(ctx context.Context, tasks []Task) error
}
