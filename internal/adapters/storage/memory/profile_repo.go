package memory

import (
	"context"
	"sync"

	"zoomieband/internal/domain/profile"
)

type profileRepo struct {
	mu    sync.RWMutex
	saved *profile.Profile
}

func NewProfileRepo() profile.Repository {
	return &profileRepo{}
}

func (r *profileRepo) Load(ctx context.Context) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.saved == nil {
		return profile.Profile{}, profile.ErrNotFound
	}
	return *r.saved, nil
}

func (r *profileRepo) Save(ctx context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved = &p
	return nil
}
