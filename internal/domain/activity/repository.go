package activity

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert reemplaza el registro del mismo Day si existe.
	Upsert(ctx context.Context, a DayActivity) error
	// GetByDay devuelve ErrNotFound si no hay registro.
	GetByDay(ctx context.Context, day time.Time) (DayActivity, error)
	// ListBetween devuelve [from, to] inclusive, más nuevo primero.
	ListBetween(ctx context.Context, from, to time.Time) ([]DayActivity, error)
}
