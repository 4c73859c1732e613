package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zoomieband/internal/platform/logger"
)

const saveTimeout = 5 * time.Second

// Open arma el store a partir del repo: usa el perfil guardado si existe, si no Default().
// Cada commit posterior se guarda en el repo; si el guardado falla se loguea
// y el commit en memoria se mantiene.
func Open(ctx context.Context, repo Repository, log logger.Logger, opts ...Option) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	initial := Default()
	if repo != nil {
		saved, err := repo.Load(ctx)
		switch {
		case err == nil:
			initial = saved
		case errors.Is(err, ErrNotFound):
			// primer arranque
		default:
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	s := NewStore(initial, opts...)
	if repo == nil {
		return s, nil
	}

	log = log.With(map[string]any{"component": "profile"})
	s.Subscribe(func(p Profile) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := repo.Save(ctx, p); err != nil {
			log.Error("profile save failed", map[string]any{"version": p.Version, "error": err})
			return
		}
		log.Debug("profile saved", map[string]any{"version": p.Version})
	})
	return s, nil
}
