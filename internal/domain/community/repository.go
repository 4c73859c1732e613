package community

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	Update(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	// List devuelve el feed, más nuevo primero.
	List(ctx context.Context) ([]Post, error)
}
