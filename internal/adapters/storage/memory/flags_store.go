package memory

import (
	"context"
	"sync"

	"zoomieband/internal/ports/flags"
)

type flagStore struct {
	mu     sync.RWMutex
	values map[string]bool
}

// NewFlagStore no sobrevive un reinicio; sirve para dev y tests.
func NewFlagStore() flags.Store {
	return &flagStore{
		values: make(map[string]bool),
	}
}

func (s *flagStore) GetBool(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *flagStore) SetBool(ctx context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
