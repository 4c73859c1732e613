package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(store))
		pr.Put("/", commitProfileHandler(store))
		pr.Post("/drafts", beginEditHandler(store))
		pr.Get("/age", ageHandler(store))
	})
}

// profileResponse es el perfil de la mascota con la edad derivada al momento del request.
type profileResponse struct {
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Birthday  time.Time `json:"birthday"`
	AgeYears  float64   `json:"age_years"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// draftPayload se usa tanto para devolver un draft como para commitearlo.
type draftPayload struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	Birthday string `json:"birthday"` // YYYY-MM-DD o RFC3339
}

type ageResponse struct {
	AsOf     time.Time `json:"as_of"`
	AgeYears float64   `json:"age_years"`
}

type invalidProfileResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// getProfileHandler godoc
// @Summary Perfil de la mascota
// @Tags profile
// @Produce json
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /profile [get]
func getProfileHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		p := store.Get()
		writeJSON(w, http.StatusOK, toProfileResponse(p, store.now()))
	}
}

// beginEditHandler godoc
// @Summary Abrir un draft de edición
// @Description Devuelve una copia de los valores actuales para editar; no modifica el perfil.
// @Tags profile
// @Produce json
// @Success 201 {object} draftPayload
// @Router /profile/drafts [post]
func beginEditHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		d := store.BeginEdit()
		writeJSON(w, http.StatusCreated, draftPayload{
			Name:     d.Name,
			Breed:    d.Breed,
			Birthday: d.Birthday.Format(time.RFC3339),
		})
	}
}

// commitProfileHandler godoc
// @Summary Guardar draft
// @Description Reemplaza nombre, raza y cumpleaños de una vez.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body draftPayload true "Draft completo"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json / birthday inválido"
// @Failure 422 {object} invalidProfileResponse
// @Router /profile [put]
func commitProfileHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req draftPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := ParseBirthday(req.Birthday)
		if err != nil {
			http.Error(w, "birthday must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
			return
		}

		// Partimos del draft actual: el cliente manda siempre los tres campos.
		d := store.BeginEdit()
		d.Name = strings.TrimSpace(req.Name)
		d.Breed = strings.TrimSpace(req.Breed)
		d.Birthday = bd

		if err := store.Commit(d); err != nil {
			var invalid *InvalidProfileError
			if errors.As(err, &invalid) {
				writeJSON(w, http.StatusUnprocessableEntity, invalidProfileResponse{
					Error:  "invalid profile",
					Fields: invalid.Fields,
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(store.Get(), store.now()))
	}
}

// ageHandler godoc
// @Summary Edad derivada
// @Tags profile
// @Produce json
// @Param as_of query string false "RFC3339; default ahora"
// @Success 200 {object} ageResponse
// @Router /profile/age [get]
func ageHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf := store.now()
		if v := strings.TrimSpace(r.URL.Query().Get("as_of")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "as_of must be RFC3339", http.StatusBadRequest)
				return
			}
			asOf = t
		}

		writeJSON(w, http.StatusOK, ageResponse{
			AsOf:     asOf,
			AgeYears: store.AgeYears(asOf),
		})
	}
}

// ParseBirthday acepta YYYY-MM-DD (medianoche local) o RFC3339.
func ParseBirthday(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidInput
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return t, nil
}

func toProfileResponse(p Profile, now time.Time) profileResponse {
	return profileResponse{
		Name:      p.Name,
		Breed:     p.Breed,
		Birthday:  p.Birthday,
		AgeYears:  p.AgeYears(now),
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
