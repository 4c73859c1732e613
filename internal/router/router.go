package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "zoomieband/docs"
	"zoomieband/internal/adapters/auth/local"
	mem "zoomieband/internal/adapters/storage/memory"
	"zoomieband/internal/domain/activity"
	"zoomieband/internal/domain/community"
	"zoomieband/internal/domain/playplan"
	"zoomieband/internal/domain/profile"
	"zoomieband/internal/domain/session"
	"zoomieband/internal/middleware"
	"zoomieband/internal/platform/logger"
)

// Options: todo es opcional. Lo que venga nil se arma in-memory (modo dev / tests).
type Options struct {
	Gate      *session.Gate
	Profile   *profile.Store
	PlayPlan  *playplan.Service
	Community *community.Service
	Activity  *activity.Service

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	opts = withDefaults(opts, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	session.RegisterRoutes(r, opts.Gate)

	// Todo lo demás es la app: sin sesión, 401.
	r.Group(func(app chi.Router) {
		app.Use(middleware.RequireSession(opts.Gate))

		profile.RegisterRoutes(app, opts.Profile)
		playplan.RegisterRoutes(app, opts.PlayPlan)
		community.RegisterRoutes(app, opts.Community)
		activity.RegisterRoutes(app, opts.Activity)
	})

	return r
}

func withDefaults(opts Options, log logger.Logger) Options {
	ctx := context.Background()

	if opts.Gate == nil {
		opts.Gate = session.NewGate(ctx, local.NewVerifier(), mem.NewFlagStore(), log)
	}
	if opts.Profile == nil {
		// el repo in-memory nunca falla al cargar
		opts.Profile, _ = profile.Open(ctx, mem.NewProfileRepo(), log)
	}
	if opts.PlayPlan == nil {
		opts.PlayPlan = playplan.NewService(mem.NewTaskRepo())
		if err := opts.PlayPlan.Seed(ctx); err != nil {
			log.Warn("seed play plan failed", map[string]any{"error": err})
		}
	}
	if opts.Community == nil {
		opts.Community = community.NewService(mem.NewPostRepo())
		if err := opts.Community.SeedSamples(ctx); err != nil {
			log.Warn("seed feed failed", map[string]any{"error": err})
		}
	}
	if opts.Activity == nil {
		opts.Activity = activity.NewService(mem.NewActivityRepo(), activity.DefaultDailyStepGoal)
	}
	return opts
}
