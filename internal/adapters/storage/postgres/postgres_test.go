package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoomieband/internal/domain/activity"
	"zoomieband/internal/domain/profile"
	"zoomieband/internal/ports/flags"
)

// Necesita una base real: ZOOMIE_TEST_PG_DSN=postgres://... go test ./...
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("ZOOMIE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("ZOOMIE_TEST_PG_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)
	for _, table := range []string{"app_flags", "pet_profile", "day_activity", "play_tasks", "community_posts"} {
		_, err := db.ExecContext(ctx, "TRUNCATE "+table)
		require.NoError(t, err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	v, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v)
}

func TestFlagStore(t *testing.T) {
	s := NewFlagStore(openTestDB(t))
	ctx := context.Background()

	v, err := s.GetBool(ctx, flags.KeyLoggedIn)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, s.SetBool(ctx, flags.KeyLoggedIn, true))
	v, err = s.GetBool(ctx, flags.KeyLoggedIn)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestProfileRepo(t *testing.T) {
	r := NewProfileRepo(openTestDB(t))
	ctx := context.Background()

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, profile.ErrNotFound)

	want := profile.Profile{
		Name:      "Rex",
		Breed:     "Beagle",
		Birthday:  time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Version:   1,
		UpdatedAt: time.Date(2025, time.December, 2, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, r.Save(ctx, want))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Birthday.Equal(got.Birthday))
	assert.Equal(t, want.Version, got.Version)
}

func TestActivityRepo_UpsertByDay(t *testing.T) {
	r := NewActivityRepo(openTestDB(t))
	ctx := context.Background()
	day := time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC)

	id := uuid.NewString()
	require.NoError(t, r.Upsert(ctx, activity.DayActivity{ID: id, Day: day, Steps: 100, RecordedAt: time.Now()}))
	require.NoError(t, r.Upsert(ctx, activity.DayActivity{ID: uuid.NewString(), Day: day, Steps: 300, RecordedAt: time.Now()}))

	got, err := r.GetByDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 300, got.Steps)

	items, err := r.ListBetween(ctx, day.AddDate(0, 0, -6), day)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
