package main

import (
	"context"
	"database/sql"
	"fmt"

	"zoomieband/internal/adapters/auth/identity"
	"zoomieband/internal/adapters/auth/local"
	mem "zoomieband/internal/adapters/storage/memory"
	"zoomieband/internal/adapters/storage/postgres"
	"zoomieband/internal/adapters/storage/sqlite"
	"zoomieband/internal/config"
	"zoomieband/internal/domain/activity"
	"zoomieband/internal/domain/community"
	"zoomieband/internal/domain/playplan"
	"zoomieband/internal/domain/profile"
	"zoomieband/internal/domain/session"
	"zoomieband/internal/platform/logger"
	"zoomieband/internal/ports/auth"
	"zoomieband/internal/ports/flags"
)

// app junta los módulos ya cableados al storage configurado.
type app struct {
	gate      *session.Gate
	profile   *profile.Store
	playplan  *playplan.Service
	community *community.Service
	activity  *activity.Service

	db *sql.DB
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

type repos struct {
	flags    flags.Store
	profile  profile.Repository
	tasks    playplan.Repository
	posts    community.Repository
	activity activity.Repository
	db       *sql.DB
}

func buildApp(ctx context.Context, cfg config.Config, log logger.Logger) (*app, error) {
	rs, err := openRepos(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &app{db: rs.db}

	verifier, err := newVerifier(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	var opts []profile.Option
	if cfg.Profile.LenientCommit {
		opts = append(opts, profile.Lenient())
	}
	if a.profile, err = profile.Open(ctx, rs.profile, log, opts...); err != nil {
		a.Close()
		return nil, err
	}

	a.gate = session.NewGate(ctx, verifier, rs.flags, log)
	a.playplan = playplan.NewService(rs.tasks)
	a.community = community.NewService(rs.posts)
	a.activity = activity.NewService(rs.activity, cfg.Activity.DailyStepGoal,
		activity.WithWeeklyGoals(cfg.Activity.WeeklyDistanceGoalKm, cfg.Activity.WeeklyCalorieGoal))

	// los seeds solo cargan si la tabla está vacía
	if err := a.playplan.Seed(ctx); err != nil {
		log.Warn("seed play plan failed", map[string]any{"error": err})
	}
	if err := a.community.SeedSamples(ctx); err != nil {
		log.Warn("seed feed failed", map[string]any{"error": err})
	}
	if err := a.activity.SeedSamples(ctx); err != nil {
		log.Warn("seed activity failed", map[string]any{"error": err})
	}

	return a, nil
}

func openRepos(ctx context.Context, cfg config.Config) (repos, error) {
	rs := repos{
		flags:    mem.NewFlagStore(),
		profile:  mem.NewProfileRepo(),
		tasks:    mem.NewTaskRepo(),
		posts:    mem.NewPostRepo(),
		activity: mem.NewActivityRepo(),
	}

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return repos{}, fmt.Errorf("open sqlite: %w", err)
		}
		rs.db = db
		rs.flags = sqlite.NewFlagStore(db)
		rs.profile = sqlite.NewProfileRepo(db)
		rs.tasks = sqlite.NewTasksRepo(db)
		rs.posts = sqlite.NewPostsRepo(db)
		rs.activity = sqlite.NewActivityRepo(db)

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return repos{}, fmt.Errorf("open postgres: %w", err)
		}
		if _, err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return repos{}, fmt.Errorf("migrate postgres: %w", err)
		}
		rs.db = db
		rs.flags = postgres.NewFlagStore(db)
		rs.profile = postgres.NewProfileRepo(db)
		rs.tasks = postgres.NewTasksRepo(db)
		rs.posts = postgres.NewPostsRepo(db)
		rs.activity = postgres.NewActivityRepo(db)
	}
	return rs, nil
}

func newVerifier(cfg config.Config, log logger.Logger) (auth.CredentialVerifier, error) {
	if cfg.Identity.BaseURL == "" {
		log.Warn("identity.base_url not set, using local accounts", nil)
		return local.NewVerifier(), nil
	}

	client, err := identity.NewClient(identity.Config{
		BaseURL:      cfg.Identity.BaseURL,
		APIKey:       cfg.Identity.APIKey,
		APIKeyHeader: cfg.Identity.APIKeyHeader,
		Timeout:      cfg.Identity.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("identity client: %w", err)
	}
	return identity.NewVerifier(client), nil
}
