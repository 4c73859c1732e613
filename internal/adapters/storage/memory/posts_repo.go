package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"zoomieband/internal/domain/community"
)

type postRepo struct {
	mu   sync.RWMutex
	byID map[string]community.Post
}

func NewPostRepo() community.Repository {
	return &postRepo{
		byID: make(map[string]community.Post),
	}
}

func (r *postRepo) Create(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) Update(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return community.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return community.Post{}, community.ErrNotFound
	}
	return p, nil
}

func (r *postRepo) List(ctx context.Context) ([]community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// más nuevo primero; desempata por id para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
