package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"zoomieband/internal/domain/playplan"
)

type taskRepo struct {
	mu   sync.RWMutex
	byID map[string]playplan.Task
}

func NewTaskRepo() playplan.Repository {
	return &taskRepo{
		byID: make(map[string]playplan.Task),
	}
}

func (r *taskRepo) List(ctx context.Context) ([]playplan.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playplan.Task, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (playplan.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return playplan.Task{}, playplan.ErrNotFound
	}
	return t, nil
}

func (r *taskRepo) Update(ctx context.Context, t playplan.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return playplan.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *taskRepo) ReplaceAll(ctx context.Context, tasks []playplan.Task) error {
	next := make(map[string]playplan.Task, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.ID) == "" {
			return errors.New("task id required")
		}
		next[t.ID] = t
	}

	r.mu.Lock()
	r.byID = next
	r.mu.Unlock()
	return nil
}
