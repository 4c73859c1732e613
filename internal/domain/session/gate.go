package session

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"zoomieband/internal/platform/logger"
	"zoomieband/internal/ports/auth"
	"zoomieband/internal/ports/flags"
)

// Gate controla el acceso a la app: flag autenticado + input transitorio de login.
//
// El mutex nunca se mantiene mientras corre el verifier. Submits idénticos
// concurrentes (misma operación y credenciales) comparten una sola llamada.
//
// Las llamadas al verifier y la escritura de la flag corren con
// context.WithoutCancel: una vez enviada, la verificación no se cancela
// aunque el caller se vaya, y un login aceptado siempre se persiste.
type Gate struct {
	mu            sync.RWMutex
	authenticated bool
	email         string
	password      string

	// persistMu serializa cambio de flag + escritura en el store.
	persistMu sync.Mutex

	verifier auth.CredentialVerifier
	flags    flags.Store
	log      logger.Logger

	inflight singleflight.Group
}

// NewGate lee la flag persistida para arrancar en LoggedIn o LoggedOut.
// Si la lectura falla arranca LoggedOut.
func NewGate(ctx context.Context, verifier auth.CredentialVerifier, store flags.Store, log logger.Logger) *Gate {
	if log == nil {
		log = logger.Nop()
	}
	if store == nil {
		store = &volatileFlags{values: map[string]bool{}}
	}

	g := &Gate{
		verifier: verifier,
		flags:    store,
		log:      log.With(map[string]any{"component": "session"}),
	}

	authed, err := store.GetBool(ctx, flags.KeyLoggedIn)
	if err != nil {
		g.log.Warn("read persisted login flag failed", map[string]any{"error": err})
		authed = false
	}
	g.authenticated = authed
	return g
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return State{
		Authenticated:     g.authenticated,
		Email:             g.email,
		SubmissionEnabled: SubmissionEnabled(g.email, g.password),
	}
}

func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// UpdateEmail guarda el valor tal cual.
func (g *Gate) UpdateEmail(email string) State {
	g.mu.Lock()
	g.email = email
	g.mu.Unlock()
	return g.State()
}

// UpdatePassword guarda el valor tal cual.
func (g *Gate) UpdatePassword(password string) State {
	g.mu.Lock()
	g.password = password
	g.mu.Unlock()
	return g.State()
}

// SubmitLogin llama al verifier con el input actual.
// Éxito: LoggedIn y flag persistida. Fallo: *AuthenticationError, nada cambia.
func (g *Gate) SubmitLogin(ctx context.Context) error {
	email, password, ok := g.credentials()
	if !ok {
		return ErrSubmissionDisabled
	}
	ctx = context.WithoutCancel(ctx)

	_, err, shared := g.inflight.Do(flightKey(OpLogin, email, password), func() (any, error) {
		return nil, g.verifier.VerifyLogin(ctx, email, password)
	})
	if err != nil {
		g.log.Info("login failed", map[string]any{"email": email, "error": err, "shared": shared})
		return authError(OpLogin, err)
	}

	g.setAuthenticated(ctx, true)
	g.log.Info("login succeeded", map[string]any{"email": email, "shared": shared})
	return nil
}

// SubmitRegistration crea la cuenta. Éxito: limpia la password (el email queda)
// y pide re-login; nunca autentica.
func (g *Gate) SubmitRegistration(ctx context.Context) (RegistrationSucceeded, error) {
	email, password, ok := g.credentials()
	if !ok {
		return RegistrationSucceeded{}, ErrSubmissionDisabled
	}
	ctx = context.WithoutCancel(ctx)

	_, err, shared := g.inflight.Do(flightKey(OpRegister, email, password), func() (any, error) {
		return nil, g.verifier.CreateAccount(ctx, email, password)
	})
	if err != nil {
		g.log.Info("registration failed", map[string]any{"email": email, "error": err, "shared": shared})
		return RegistrationSucceeded{}, authError(OpRegister, err)
	}

	g.mu.Lock()
	g.password = ""
	g.mu.Unlock()

	g.log.Info("registration succeeded", map[string]any{"email": email, "shared": shared})
	return RegistrationSucceeded{Email: email, Notice: RegistrationNotice}, nil
}

// Logout cierra sesión en el provider. Si falla, se loguea y el estado no cambia.
func (g *Gate) Logout(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	_, err, _ := g.inflight.Do(string(OpLogout), func() (any, error) {
		return nil, g.verifier.SignOut(ctx)
	})
	if err != nil {
		soErr := &SignOutError{Err: err}
		g.log.Warn("sign out failed", map[string]any{"error": err})
		return soErr
	}

	g.setAuthenticated(ctx, false)
	g.log.Info("signed out", nil)
	return nil
}

func (g *Gate) SubmitLoginAsync(ctx context.Context) <-chan Outcome {
	return async(OpLogin, func() (*RegistrationSucceeded, error) {
		return nil, g.SubmitLogin(ctx)
	})
}

func (g *Gate) SubmitRegistrationAsync(ctx context.Context) <-chan Outcome {
	return async(OpRegister, func() (*RegistrationSucceeded, error) {
		res, err := g.SubmitRegistration(ctx)
		if err != nil {
			return nil, err
		}
		return &res, nil
	})
}

func (g *Gate) LogoutAsync(ctx context.Context) <-chan Outcome {
	return async(OpLogout, func() (*RegistrationSucceeded, error) {
		return nil, g.Logout(ctx)
	})
}

// async corre fn en una goroutine y entrega exactamente un Outcome.
// El canal tiene buffer: si nadie lo lee, la goroutine igual termina.
func async(op Op, fn func() (*RegistrationSucceeded, error)) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		reg, err := fn()
		out <- Outcome{Op: op, Registration: reg, Err: err}
	}()
	return out
}

func (g *Gate) credentials() (email, password string, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.email, g.password, SubmissionEnabled(g.email, g.password)
}

func (g *Gate) setAuthenticated(ctx context.Context, v bool) {
	g.persistMu.Lock()
	defer g.persistMu.Unlock()

	g.mu.Lock()
	g.authenticated = v
	g.mu.Unlock()

	// El estado en memoria ya cambió; un fallo acá solo afecta el próximo arranque.
	if err := g.flags.SetBool(ctx, flags.KeyLoggedIn, v); err != nil {
		g.log.Error("persist login flag failed", map[string]any{"value": v, "error": err})
	}
}

func authError(op Op, err error) *AuthenticationError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return &AuthenticationError{Op: op, Message: msg, Err: err}
}

func flightKey(op Op, email, password string) string {
	return string(op) + "\x00" + email + "\x00" + password
}

// volatileFlags es el fallback cuando no hay store: la flag vive solo en memoria.
type volatileFlags struct {
	mu     sync.Mutex
	values map[string]bool
}

func (f *volatileFlags) GetBool(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *volatileFlags) SetBool(_ context.Context, key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}
