package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/activity", func(ar chi.Router) {
		ar.Get("/", listActivityHandler(svc))
		ar.Post("/", recordActivityHandler(svc))
		ar.Get("/today", todayHandler(svc))
		ar.Get("/week", weekHandler(svc))
	})
}

type recordRequest struct {
	Day         string  `json:"day"` // YYYY-MM-DD
	Steps       int     `json:"steps"`
	DistanceKm  float64 `json:"distance_km"`
	ActiveHours float64 `json:"active_hours"`
	Calories    int     `json:"calories"`
}

type dayResponse struct {
	ID          string    `json:"id"`
	Day         string    `json:"day"`
	Steps       int       `json:"steps"`
	DistanceKm  float64   `json:"distance_km"`
	ActiveHours float64   `json:"active_hours"`
	Calories    int       `json:"calories"`
	TrendUp     bool      `json:"trend_up"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type historyResponse struct {
	Range string        `json:"range"`
	Days  []dayResponse `json:"days"`
}

type goalResponse struct {
	Steps   int     `json:"steps"`
	Goal    int     `json:"goal"`
	Ratio   float64 `json:"ratio"`
	Percent int     `json:"percent"`
}

// listActivityHandler godoc
// @Summary Historial de actividad
// @Tags activity
// @Produce json
// @Param range query string false "week|month|year (default week)"
// @Param as_of query string false "YYYY-MM-DD o RFC3339; default hoy"
// @Success 200 {object} historyResponse
// @Failure 400 {string} string "invalid range / as_of"
// @Router /activity [get]
func listActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := ParseRange(r.URL.Query().Get("range"))
		if err != nil {
			http.Error(w, "range must be week, month or year", http.StatusBadRequest)
			return
		}
		asOf, ok := asOfParam(w, r, svc.now())
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), rng, asOf)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := historyResponse{Range: string(rng), Days: make([]dayResponse, 0, len(items))}
		for _, e := range items {
			d := toDayResponse(e.DayActivity)
			d.TrendUp = e.TrendUp
			out.Days = append(out.Days, d)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recordActivityHandler godoc
// @Summary Registrar actividad de un día
// @Description Si el día ya tiene registro, se reemplaza.
// @Tags activity
// @Accept json
// @Produce json
// @Param payload body recordRequest true "day es obligatorio"
// @Success 200 {object} dayResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /activity [post]
func recordActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		day, err := time.Parse(DayLayout, strings.TrimSpace(req.Day))
		if err != nil {
			http.Error(w, "day must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Record(r.Context(), RecordInput{
			Day:         day,
			Steps:       req.Steps,
			DistanceKm:  req.DistanceKm,
			ActiveHours: req.ActiveHours,
			Calories:    req.Calories,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toDayResponse(a))
	}
}

// todayHandler godoc
// @Summary Progreso de la meta diaria
// @Tags activity
// @Produce json
// @Param as_of query string false "YYYY-MM-DD o RFC3339; default hoy"
// @Success 200 {object} goalResponse
// @Router /activity/today [get]
func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, ok := asOfParam(w, r, svc.now())
		if !ok {
			return
		}

		gp, err := svc.Today(r.Context(), asOf)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, goalResponse{
			Steps:   gp.Steps,
			Goal:    gp.Goal,
			Ratio:   gp.Ratio,
			Percent: gp.Percent,
		})
	}
}

type weekResponse struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	DistanceKm      float64 `json:"distance_km"`
	DistanceGoalKm  float64 `json:"distance_goal_km"`
	DistancePercent int     `json:"distance_percent"`
	Calories        int     `json:"calories"`
	CalorieGoal     int     `json:"calorie_goal"`
	CaloriePercent  int     `json:"calorie_percent"`
}

// weekHandler godoc
// @Summary Progreso de las metas semanales
// @Description Suma distancia y calorías de los últimos 7 días (incluye as_of).
// @Tags activity
// @Produce json
// @Param as_of query string false "YYYY-MM-DD o RFC3339; default hoy"
// @Success 200 {object} weekResponse
// @Failure 400 {string} string "invalid as_of"
// @Router /activity/week [get]
func weekHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, ok := asOfParam(w, r, svc.now())
		if !ok {
			return
		}

		wp, err := svc.Week(r.Context(), asOf)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, weekResponse{
			From:            wp.From.Format(DayLayout),
			To:              wp.To.Format(DayLayout),
			DistanceKm:      wp.DistanceKm,
			DistanceGoalKm:  wp.DistanceGoalKm,
			DistancePercent: wp.DistancePercent,
			Calories:        wp.Calories,
			CalorieGoal:     wp.CalorieGoal,
			CaloriePercent:  wp.CaloriePercent,
		})
	}
}

func asOfParam(w http.ResponseWriter, r *http.Request, def time.Time) (time.Time, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("as_of"))
	if v == "" {
		return def, true
	}
	if t, err := time.Parse(DayLayout, v); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		http.Error(w, "as_of must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func toDayResponse(a DayActivity) dayResponse {
	return dayResponse{
		ID:          a.ID,
		Day:         a.Day.Format(DayLayout),
		Steps:       a.Steps,
		DistanceKm:  a.DistanceKm,
		ActiveHours: a.ActiveHours,
		Calories:    a.Calories,
		RecordedAt:  a.RecordedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
