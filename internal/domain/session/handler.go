package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /session. Estas rutas quedan fuera del RequireSession.
func RegisterRoutes(r chi.Router, g *Gate) {
	r.Route("/session", func(sr chi.Router) {
		sr.Get("/", getStateHandler(g))
		sr.Put("/email", updateEmailHandler(g))
		sr.Put("/password", updatePasswordHandler(g))
		sr.Post("/login", loginHandler(g))
		sr.Post("/register", registerHandler(g))
		sr.Post("/logout", logoutHandler(g))
	})
}

type stateResponse struct {
	Status            Status `json:"status"`
	Authenticated     bool   `json:"authenticated"`
	Email             string `json:"email"`
	SubmissionEnabled bool   `json:"submission_enabled"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type registrationResponse struct {
	Email  string        `json:"email"`
	Notice string        `json:"notice"`
	State  stateResponse `json:"state"`
}

type errorResponse struct {
	Error string        `json:"error"`
	State stateResponse `json:"state"`
}

// getStateHandler godoc
// @Summary Estado de la sesión
// @Tags session
// @Produce json
// @Success 200 {object} stateResponse
// @Router /session [get]
func getStateHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, toStateResponse(g.State()))
	}
}

// updateEmailHandler godoc
// @Summary Actualizar email del formulario
// @Tags session
// @Accept json
// @Produce json
// @Param payload body emailRequest true "email tal cual se tipeó"
// @Success 200 {object} stateResponse
// @Router /session/email [put]
func updateEmailHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toStateResponse(g.UpdateEmail(req.Email)))
	}
}

// updatePasswordHandler godoc
// @Summary Actualizar password del formulario
// @Tags session
// @Accept json
// @Produce json
// @Param payload body passwordRequest true "password"
// @Success 200 {object} stateResponse
// @Router /session/password [put]
func updatePasswordHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, toStateResponse(g.UpdatePassword(req.Password)))
	}
}

// loginHandler godoc
// @Summary Login con el email/password cargados
// @Tags session
// @Produce json
// @Success 200 {object} stateResponse
// @Failure 401 {object} errorResponse
// @Failure 409 {object} errorResponse "input incompleto"
// @Router /session/login [post]
func loginHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, ok := await(r.Context(), g.SubmitLoginAsync(r.Context()))
		if !ok {
			return
		}
		if out.Err != nil {
			writeGateError(w, g, out.Err)
			return
		}
		writeJSON(w, http.StatusOK, toStateResponse(g.State()))
	}
}

// registerHandler godoc
// @Summary Crear cuenta
// @Description No deja la sesión abierta: limpia la password y pide volver a loguearse.
// @Tags session
// @Produce json
// @Success 200 {object} registrationResponse
// @Failure 401 {object} errorResponse
// @Failure 409 {object} errorResponse "input incompleto"
// @Router /session/register [post]
func registerHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, ok := await(r.Context(), g.SubmitRegistrationAsync(r.Context()))
		if !ok {
			return
		}
		if out.Err != nil {
			writeGateError(w, g, out.Err)
			return
		}
		writeJSON(w, http.StatusOK, registrationResponse{
			Email:  out.Registration.Email,
			Notice: out.Registration.Notice,
			State:  toStateResponse(g.State()),
		})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Description Si el provider falla se loguea y la sesión sigue abierta; igual responde 200 con el estado.
// @Tags session
// @Produce json
// @Success 200 {object} stateResponse
// @Router /session/logout [post]
func logoutHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := await(r.Context(), g.LogoutAsync(r.Context())); !ok {
			return
		}
		// el SignOutError ya quedó logueado en el gate
		writeJSON(w, http.StatusOK, toStateResponse(g.State()))
	}
}

// await espera el Outcome o a que se cancele el request.
func await(ctx context.Context, ch <-chan Outcome) (Outcome, bool) {
	select {
	case out := <-ch:
		return out, true
	case <-ctx.Done():
		return Outcome{}, false
	}
}

func writeGateError(w http.ResponseWriter, g *Gate, err error) {
	var authErr *AuthenticationError
	switch {
	case errors.Is(err, ErrSubmissionDisabled):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), State: toStateResponse(g.State())})
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: authErr.Error(), State: toStateResponse(g.State())})
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toStateResponse(s State) stateResponse {
	return stateResponse{
		Status:            s.Status(),
		Authenticated:     s.Authenticated,
		Email:             s.Email,
		SubmissionEnabled: s.SubmissionEnabled,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
