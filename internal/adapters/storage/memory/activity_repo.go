package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"zoomieband/internal/domain/activity"
)

// activityRepo indexa por fecha (YYYY-MM-DD): un registro por día.
type activityRepo struct {
	mu    sync.RWMutex
	byDay map[string]activity.DayActivity
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		byDay: make(map[string]activity.DayActivity),
	}
}

func (r *activityRepo) Upsert(ctx context.Context, a activity.DayActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byDay[dayKey(a.Day)] = a
	return nil
}

func (r *activityRepo) GetByDay(ctx context.Context, day time.Time) (activity.DayActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byDay[dayKey(day)]
	if !ok {
		return activity.DayActivity{}, activity.ErrNotFound
	}
	return a, nil
}

func (r *activityRepo) ListBetween(ctx context.Context, from, to time.Time) ([]activity.DayActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo, hi := dayKey(from), dayKey(to)
	out := make([]activity.DayActivity, 0)
	for k, a := range r.byDay {
		if k >= lo && k <= hi {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.After(out[j].Day)
	})
	return out, nil
}

func dayKey(t time.Time) string {
	return activity.DayOf(t).Format(activity.DayLayout)
}
