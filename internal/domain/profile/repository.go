package profile

import "context"

// Repository persiste el último perfil commiteado.
// Load devuelve ErrNotFound si nunca se guardó nada.
type Repository interface {
	Load(ctx context.Context) (Profile, error)
	Save(ctx context.Context, p Profile) error
}
