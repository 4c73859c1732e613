package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("post not found")
	ErrChallengeNotFound = errors.New("challenge not found")
)

type Service struct {
	repo Repository
	now  func() time.Time

	mu sync.Mutex

	// retos y tabla viven en memoria; se cargan con SeedSamples
	challenges []Challenge
	standings  []Standing
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetName       string
	ActivityTitle string
	Distance      string
	Duration      string
	Pace          string
	Location      string
	ImageName     string
	Kudos         int
	Comments      int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Post, error) {
	return s.create(ctx, in, s.now())
}

func (s *Service) create(ctx context.Context, in CreateInput, at time.Time) (Post, error) {
	if strings.TrimSpace(in.PetName) == "" || strings.TrimSpace(in.ActivityTitle) == "" {
		return Post{}, ErrInvalidInput
	}
	if in.Kudos < 0 || in.Comments < 0 {
		return Post{}, ErrInvalidInput
	}

	p := Post{
		ID:            uuid.NewString(),
		PetName:       strings.TrimSpace(in.PetName),
		ActivityTitle: strings.TrimSpace(in.ActivityTitle),
		Distance:      strings.TrimSpace(in.Distance),
		Duration:      strings.TrimSpace(in.Duration),
		Pace:          strings.TrimSpace(in.Pace),
		Location:      strings.TrimSpace(in.Location),
		ImageName:     strings.TrimSpace(in.ImageName),
		Kudos:         in.Kudos,
		Comments:      in.Comments,
		CreatedAt:     at,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.repo.List(ctx)
}

func (s *Service) ToggleKudos(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	p.ToggleKudos()

	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Challenges devuelve una copia de los retos activos y vencidos, en orden de carga.
func (s *Service) Challenges(ctx context.Context) []Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Challenge, len(s.challenges))
	copy(out, s.challenges)
	return out
}

// ToggleJoin une o saca a la mascota local de un reto.
func (s *Service) ToggleJoin(ctx context.Context, id string) (Challenge, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Challenge{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.challenges {
		if s.challenges[i].ID != id {
			continue
		}
		s.challenges[i].ToggleJoin()
		return s.challenges[i], nil
	}
	return Challenge{}, ErrChallengeNotFound
}

func (s *Service) Leaderboard(ctx context.Context) []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Rank(s.standings)
}

// SeedSamples carga feed, retos y tabla de ejemplo; cada uno solo si está vacío.
func (s *Service) SeedSamples(ctx context.Context) error {
	s.seedBoard()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.now()
	samples := []struct {
		in  CreateInput
		age time.Duration
	}{
		{CreateInput{PetName: "Willi", ActivityTitle: "Morning Walk", Distance: "2.4 mi", Duration: "45min", Pace: "18:45/mi", Location: "Memorial Park", ImageName: "willi", Kudos: 12, Comments: 3}, 2 * time.Hour},
		{CreateInput{PetName: "Alex", ActivityTitle: "Evening Walk", Distance: "0.3 mi", Duration: "15min", Pace: "50:00/mi", Location: "Charles River Esplanade", ImageName: "alex", Kudos: 24, Comments: 7}, 10 * time.Hour},
		{CreateInput{PetName: "Mylo", ActivityTitle: "Beach Walk", Distance: "1.8 mi", Duration: "32min", Pace: "17:47/mi", Location: "Huntington Dog Beach", ImageName: "mylo", Kudos: 18, Comments: 5}, 24 * time.Hour},
		{CreateInput{PetName: "Bodhi", ActivityTitle: "Morning Walk", Distance: "0.3 mi", Duration: "15min", Pace: "50:00/mi", Location: "Huntington Dog Beach", ImageName: "bodhi", Kudos: 18, Comments: 5}, 26 * time.Hour},
	}

	for _, sm := range samples {
		if _, err := s.create(ctx, sm.in, now.Add(-sm.age)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) seedBoard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.challenges) == 0 {
		s.challenges = []Challenge{
			{ID: uuid.NewString(), Title: "December Walking Challenge", Subtitle: "Walk 50 miles this month", Current: 2, Total: 50, Unit: "mi", Participants: 234, EndsAt: now.Add(29 * 24 * time.Hour)},
			{ID: uuid.NewString(), Title: "Weekday Warrior", Subtitle: "Complete 5 walks this week", Current: 2, Total: 5, Unit: "walks", Participants: 72, EndsAt: now.Add(3 * 24 * time.Hour)},
		}
	}
	if len(s.standings) == 0 {
		s.standings = []Standing{
			{PetName: "Kora", Distance: 87.4, Unit: "mi", ImageName: "kora"},
			{PetName: "Willi", Distance: 82.1, Unit: "mi", ImageName: "willi"},
			{PetName: "Bodhi", Distance: 76.8, Unit: "mi", ImageName: "bodhi"},
			{PetName: "Mylo", Distance: 71.3, Unit: "mi", ImageName: "mylo"},
			{PetName: "Yogi", Distance: 68.9, Unit: "mi", ImageName: "yogi"},
		}
	}
}
