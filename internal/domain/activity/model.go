package activity

import (
	"math"
	"strings"
	"time"
)

const (
	DefaultDailyStepGoal = 10000

	DefaultWeeklyDistanceGoalKm = 50.0
	DefaultWeeklyCalorieGoal    = 2500

	DayLayout = "2006-01-02"
)

// Range es la ventana del historial.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// Days devuelve la cantidad de días que cubre el rango (incluye hoy).
func (r Range) Days() int {
	switch r {
	case RangeMonth:
		return 30
	case RangeYear:
		return 365
	default:
		return 7
	}
}

// ParseRange acepta week/month/year (case-insensitive). Vacío = week.
func ParseRange(s string) (Range, error) {
	switch Range(strings.ToLower(strings.TrimSpace(s))) {
	case "", RangeWeek:
		return RangeWeek, nil
	case RangeMonth:
		return RangeMonth, nil
	case RangeYear:
		return RangeYear, nil
	default:
		return "", ErrInvalidInput
	}
}

// DayActivity es el registro de un día. Day siempre es medianoche UTC de la fecha calendario.
type DayActivity struct {
	ID          string
	Day         time.Time
	Steps       int
	DistanceKm  float64
	ActiveHours float64
	Calories    int
	RecordedAt  time.Time
}

// Entry es un día del historial con la tendencia contra el registro anterior.
type Entry struct {
	DayActivity
	TrendUp bool
}

// GoalProgress: Ratio va de 0 a 1 aunque se pase la meta.
type GoalProgress struct {
	Steps   int
	Goal    int
	Ratio   float64
	Percent int
}

func GoalProgressOf(steps, goal int) GoalProgress {
	gp := GoalProgress{Steps: steps, Goal: goal}
	gp.Ratio = ratioOf(float64(steps), float64(goal))
	gp.Percent = percentOf(gp.Ratio)
	return gp
}

// WeeklyProgress acumula distancia y calorías de [From, To] contra las metas semanales.
type WeeklyProgress struct {
	From time.Time
	To   time.Time

	DistanceKm      float64
	DistanceGoalKm  float64
	DistancePercent int

	Calories       int
	CalorieGoal    int
	CaloriePercent int
}

// WeeklyProgressOf suma los registros; no filtra por fecha.
func WeeklyProgressOf(items []DayActivity, distanceGoalKm float64, calorieGoal int) WeeklyProgress {
	wp := WeeklyProgress{DistanceGoalKm: distanceGoalKm, CalorieGoal: calorieGoal}
	for _, a := range items {
		wp.DistanceKm += a.DistanceKm
		wp.Calories += a.Calories
	}
	// 38.5 y no 38.499999999
	wp.DistanceKm = math.Round(wp.DistanceKm*100) / 100
	wp.DistancePercent = percentOf(ratioOf(wp.DistanceKm, distanceGoalKm))
	wp.CaloriePercent = percentOf(ratioOf(float64(wp.Calories), float64(calorieGoal)))
	return wp
}

func ratioOf(v, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, v/goal))
}

func percentOf(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// DayOf normaliza t a su fecha calendario (en la zona de t) como medianoche UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
