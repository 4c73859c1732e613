package playplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("task not found")
)

type Service struct {
	repo Repository

	// toggle es read-modify-write; lo serializamos para no perder taps.
	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Seed carga DefaultLabels si el plan está vacío.
func (s *Service) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.repo.ReplaceAll(ctx, newTasks(DefaultLabels))
}

func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.repo.List(ctx)
}

func (s *Service) Progress(ctx context.Context) (Progress, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return Progress{}, err
	}
	return ProgressOf(tasks), nil
}

// Toggle invierte Completed de una tarea.
func (s *Service) Toggle(ctx context.Context, id string) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Task{}, ErrNotFound
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	t.Completed = !t.Completed

	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Reset deja todas las tareas sin completar (nuevo día).
func (s *Service) Reset(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Completed = false
	}
	if err := s.repo.ReplaceAll(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func newTasks(labels []string) []Task {
	out := make([]Task, 0, len(labels))
	for i, l := range labels {
		out = append(out, Task{
			ID:       uuid.NewString(),
			Label:    l,
			Position: i,
		})
	}
	return out
}
