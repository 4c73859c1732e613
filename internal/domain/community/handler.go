package community

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/feed", func(fr chi.Router) {
		fr.Get("/", listFeedHandler(svc))
		fr.Post("/", createPostHandler(svc))
		fr.Post("/{postID}/kudos", toggleKudosHandler(svc))
	})
	r.Route("/community", func(cr chi.Router) {
		cr.Get("/challenges", listChallengesHandler(svc))
		cr.Post("/challenges/{challengeID}/join", toggleJoinHandler(svc))
		cr.Get("/leaderboard", leaderboardHandler(svc))
	})
}

type createPostRequest struct {
	PetName       string `json:"pet_name"`
	ActivityTitle string `json:"activity_title"`
	Distance      string `json:"distance"`
	Duration      string `json:"duration"`
	Pace          string `json:"pace"`
	Location      string `json:"location"`
	ImageName     string `json:"image_name"`
}

type postResponse struct {
	ID            string    `json:"id"`
	PetName       string    `json:"pet_name"`
	ActivityTitle string    `json:"activity_title"`
	Distance      string    `json:"distance"`
	Duration      string    `json:"duration"`
	Pace          string    `json:"pace"`
	Location      string    `json:"location"`
	ImageName     string    `json:"image_name,omitempty"`
	Kudos         int       `json:"kudos"`
	Comments      int       `json:"comments"`
	Liked         bool      `json:"liked"`
	CreatedAt     time.Time `json:"created_at"`
	PostedAgo     string    `json:"posted_ago"` // "2 hours ago"
}

// listFeedHandler godoc
// @Summary Feed de la comunidad
// @Tags community
// @Produce json
// @Success 200 {array} postResponse
// @Router /feed [get]
func listFeedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPostResponse(p, svc.now()))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPostHandler godoc
// @Summary Compartir actividad
// @Tags community
// @Accept json
// @Produce json
// @Param payload body createPostRequest true "pet_name y activity_title son obligatorios"
// @Success 201 {object} postResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /feed [post]
func createPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			PetName:       req.PetName,
			ActivityTitle: req.ActivityTitle,
			Distance:      req.Distance,
			Duration:      req.Duration,
			Pace:          req.Pace,
			Location:      req.Location,
			ImageName:     req.ImageName,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toPostResponse(p, svc.now()))
	}
}

// toggleKudosHandler godoc
// @Summary Dar/quitar kudos
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {object} postResponse
// @Failure 404 {string} string "post not found"
// @Router /feed/{postID}/kudos [post]
func toggleKudosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.ToggleKudos(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
				http.Error(w, "post not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(p, svc.now()))
	}
}

type challengeResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle"`
	Current       float64 `json:"current"`
	Total         float64 `json:"total"`
	Unit          string  `json:"unit"`
	Progress      float64 `json:"progress"`
	Participants  int     `json:"participants"`
	Joined        bool    `json:"joined"`
	DaysRemaining int     `json:"days_remaining"`
}

type leaderboardEntryResponse struct {
	Rank      int     `json:"rank"`
	PetName   string  `json:"pet_name"`
	Distance  float64 `json:"distance"`
	Unit      string  `json:"unit"`
	Trophy    string  `json:"trophy,omitempty"` // gold|silver|bronze
	ImageName string  `json:"image_name,omitempty"`
}

// listChallengesHandler godoc
// @Summary Retos de la comunidad
// @Tags community
// @Produce json
// @Success 200 {array} challengeResponse
// @Router /community/challenges [get]
func listChallengesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Challenges(r.Context())
		now := svc.now()

		out := make([]challengeResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toChallengeResponse(c, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// toggleJoinHandler godoc
// @Summary Unirse/salir de un reto
// @Tags community
// @Produce json
// @Param challengeID path string true "ID del reto"
// @Success 200 {object} challengeResponse
// @Failure 404 {string} string "challenge not found"
// @Router /community/challenges/{challengeID}/join [post]
func toggleJoinHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.ToggleJoin(r.Context(), chi.URLParam(r, "challengeID"))
		if err != nil {
			http.Error(w, "challenge not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toChallengeResponse(c, svc.now()))
	}
}

// leaderboardHandler godoc
// @Summary Tabla de distancias
// @Tags community
// @Produce json
// @Success 200 {array} leaderboardEntryResponse
// @Router /community/leaderboard [get]
func leaderboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Leaderboard(r.Context())

		out := make([]leaderboardEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, leaderboardEntryResponse{
				Rank:      e.Rank,
				PetName:   e.PetName,
				Distance:  e.Distance,
				Unit:      e.Unit,
				Trophy:    string(e.Trophy),
				ImageName: e.ImageName,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toChallengeResponse(c Challenge, now time.Time) challengeResponse {
	return challengeResponse{
		ID:            c.ID,
		Title:         c.Title,
		Subtitle:      c.Subtitle,
		Current:       c.Current,
		Total:         c.Total,
		Unit:          c.Unit,
		Progress:      c.Progress(),
		Participants:  c.Participants,
		Joined:        c.Joined,
		DaysRemaining: c.DaysRemaining(now),
	}
}

func toPostResponse(p Post, now time.Time) postResponse {
	return postResponse{
		ID:            p.ID,
		PetName:       p.PetName,
		ActivityTitle: p.ActivityTitle,
		Distance:      p.Distance,
		Duration:      p.Duration,
		Pace:          p.Pace,
		Location:      p.Location,
		ImageName:     p.ImageName,
		Kudos:         p.Kudos,
		Comments:      p.Comments,
		Liked:         p.Liked,
		CreatedAt:     p.CreatedAt,
		PostedAgo:     humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
