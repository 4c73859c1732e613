package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("activity not found")
)

type Service struct {
	repo Repository
	goal int
	now  func() time.Time

	weeklyDistanceKm float64
	weeklyCalories   int
}

type Option func(*Service)

// WithWeeklyGoals fija las metas semanales; valores <= 0 dejan el default.
func WithWeeklyGoals(distanceKm float64, calories int) Option {
	return func(s *Service) {
		if distanceKm > 0 {
			s.weeklyDistanceKm = distanceKm
		}
		if calories > 0 {
			s.weeklyCalories = calories
		}
	}
}

// NewService usa DefaultDailyStepGoal si goal <= 0.
func NewService(repo Repository, goal int, opts ...Option) *Service {
	if goal <= 0 {
		goal = DefaultDailyStepGoal
	}
	s := &Service{
		repo:             repo,
		goal:             goal,
		now:              time.Now,
		weeklyDistanceKm: DefaultWeeklyDistanceGoalKm,
		weeklyCalories:   DefaultWeeklyCalorieGoal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Goal() int { return s.goal }

type RecordInput struct {
	Day         time.Time
	Steps       int
	DistanceKm  float64
	ActiveHours float64
	Calories    int
}

// Record guarda el día. Un segundo Record del mismo día lo reemplaza y conserva el ID.
func (s *Service) Record(ctx context.Context, in RecordInput) (DayActivity, error) {
	if in.Day.IsZero() {
		return DayActivity{}, ErrInvalidInput
	}
	if in.Steps < 0 || in.DistanceKm < 0 || in.ActiveHours < 0 || in.Calories < 0 {
		return DayActivity{}, ErrInvalidInput
	}
	if in.ActiveHours > 24 {
		return DayActivity{}, ErrInvalidInput
	}

	day := DayOf(in.Day)
	id := uuid.NewString()
	existing, err := s.repo.GetByDay(ctx, day)
	switch {
	case err == nil:
		id = existing.ID
	case !errors.Is(err, ErrNotFound):
		return DayActivity{}, fmt.Errorf("get day: %w", err)
	}

	a := DayActivity{
		ID:          id,
		Day:         day,
		Steps:       in.Steps,
		DistanceKm:  in.DistanceKm,
		ActiveHours: in.ActiveHours,
		Calories:    in.Calories,
		RecordedAt:  s.now(),
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return DayActivity{}, err
	}
	return a, nil
}

// List devuelve los días con registro dentro del rango que termina en asOf, más nuevo primero.
// TrendUp compara contra el registro anterior; el más viejo se compara con el día previo al rango.
func (s *Service) List(ctx context.Context, r Range, asOf time.Time) ([]Entry, error) {
	to := DayOf(asOf)
	from := to.AddDate(0, 0, -(r.Days() - 1))

	items, err := s.repo.ListBetween(ctx, from.AddDate(0, 0, -1), to)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(items))
	for i, a := range items {
		if a.Day.Before(from) {
			break
		}
		e := Entry{DayActivity: a}
		if i+1 < len(items) {
			e.TrendUp = a.Steps > items[i+1].Steps
		}
		out = append(out, e)
	}
	return out, nil
}

// Today devuelve el progreso de la meta diaria para la fecha de asOf.
func (s *Service) Today(ctx context.Context, asOf time.Time) (GoalProgress, error) {
	a, err := s.repo.GetByDay(ctx, DayOf(asOf))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GoalProgressOf(0, s.goal), nil
		}
		return GoalProgress{}, err
	}
	return GoalProgressOf(a.Steps, s.goal), nil
}

// Week suma los 7 días que terminan en la fecha de asOf contra las metas semanales.
func (s *Service) Week(ctx context.Context, asOf time.Time) (WeeklyProgress, error) {
	to := DayOf(asOf)
	from := to.AddDate(0, 0, -(RangeWeek.Days() - 1))

	items, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return WeeklyProgress{}, err
	}
	wp := WeeklyProgressOf(items, s.weeklyDistanceKm, s.weeklyCalories)
	wp.From, wp.To = from, to
	return wp, nil
}

// SeedSamples carga una semana de ejemplo terminando ayer, solo si no hay nada registrado.
func (s *Service) SeedSamples(ctx context.Context) error {
	today := DayOf(s.now())
	existing, err := s.repo.ListBetween(ctx, today.AddDate(0, 0, -RangeYear.Days()), today)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []RecordInput{
		{Steps: 10200, DistanceKm: 7.4, ActiveHours: 3.0, Calories: 398},
		{Steps: 6900, DistanceKm: 5.0, ActiveHours: 1.9, Calories: 295},
		{Steps: 7800, DistanceKm: 5.9, ActiveHours: 2.1, Calories: 310},
		{Steps: 9200, DistanceKm: 6.8, ActiveHours: 2.8, Calories: 374},
		{Steps: 8432, DistanceKm: 6.2, ActiveHours: 2.5, Calories: 342},
	}
	for i, in := range samples {
		in.Day = today.AddDate(0, 0, -(i + 1))
		if _, err := s.Record(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
