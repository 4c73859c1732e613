package playplan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/playplan", func(pr chi.Router) {
		pr.Get("/", getPlanHandler(svc))
		pr.Post("/tasks/{taskID}/toggle", toggleTaskHandler(svc))
		pr.Post("/reset", resetPlanHandler(svc))
	})
}

type taskResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

type progressResponse struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
}

type planResponse struct {
	Tasks    []taskResponse   `json:"tasks"`
	Progress progressResponse `json:"progress"`
}

// getPlanHandler godoc
// @Summary Plan de juego del día
// @Tags playplan
// @Produce json
// @Success 200 {object} planResponse
// @Router /playplan [get]
func getPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(tasks))
	}
}

// toggleTaskHandler godoc
// @Summary Marcar/desmarcar tarea
// @Tags playplan
// @Produce json
// @Param taskID path string true "ID de la tarea"
// @Success 200 {object} planResponse
// @Failure 404 {string} string "task not found"
// @Router /playplan/tasks/{taskID}/toggle [post]
func toggleTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Toggle(r.Context(), chi.URLParam(r, "taskID")); err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "task not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		tasks, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(tasks))
	}
}

// resetPlanHandler godoc
// @Summary Reiniciar el plan
// @Tags playplan
// @Produce json
// @Success 200 {object} planResponse
// @Router /playplan/reset [post]
func resetPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := svc.Reset(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(tasks))
	}
}

func toPlanResponse(tasks []Task) planResponse {
	out := planResponse{Tasks: make([]taskResponse, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskResponse{ID: t.ID, Label: t.Label, Completed: t.Completed})
	}
	p := ProgressOf(tasks)
	out.Progress = progressResponse{Completed: p.Completed, Total: p.Total, Ratio: p.Ratio}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
