package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoomieband/internal/domain/activity"
	"zoomieband/internal/domain/community"
	"zoomieband/internal/domain/playplan"
	"zoomieband/internal/domain/profile"
	"zoomieband/internal/ports/flags"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, ApplyMigrations(ctx, db))

	v, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version").Scan(&n))
	assert.Equal(t, len(AllMigrations), n)
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

	require.NoError(t, s.SetBool(ctx, flags.KeyLoggedIn, false))
	v, err = s.GetBool(ctx, flags.KeyLoggedIn)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestProfileRepo_RoundTrip(t *testing.T) {
	r := NewProfileRepo(openTestDB(t))
	ctx := context.Background()

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, profile.ErrNotFound)

	want := profile.Profile{
		Name:      "Rex",
		Breed:     "Beagle",
		Birthday:  time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Version:   2,
		UpdatedAt: time.Date(2025, time.December, 2, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, r.Save(ctx, want))

	want.Name = "Bolt"
	want.Version = 3
	require.NoError(t, r.Save(ctx, want))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoomie.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewFlagStore(db).SetBool(ctx, flags.KeyLoggedIn, true))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	v, err := NewFlagStore(db).GetBool(ctx, flags.KeyLoggedIn)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestTasksRepo_ReplaceToggleList(t *testing.T) {
	r := NewTasksRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []playplan.Task{
		{ID: "b", Label: "Fetch", Position: 1},
		{ID: "a", Label: "Walk", Position: 0},
	}))

	task, err := r.GetByID(ctx, "b")
	require.NoError(t, err)
	task.Completed = true
	require.NoError(t, r.Update(ctx, task))

	got, err := r.List(ctx)
	require.NoError(t, err)
	want := []playplan.Task{
		{ID: "a", Label: "Walk", Position: 0},
		{ID: "b", Label: "Fetch", Completed: true, Position: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tasks mismatch (-want +got):\n%s", diff)
	}

	_, err = r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, playplan.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, playplan.Task{ID: "missing"}), playplan.ErrNotFound)
}

func TestPostsRepo_NewestFirst(t *testing.T) {
	r := NewPostsRepo(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, time.December, 2, 9, 0, 0, 0, time.UTC)
	older := community.Post{ID: "p1", PetName: "Max", ActivityTitle: "Morning Run", CreatedAt: base}
	newer := community.Post{ID: "p2", PetName: "Luna", ActivityTitle: "Beach Walk", Kudos: 3, CreatedAt: base.Add(90 * time.Minute)}
	require.NoError(t, r.Create(ctx, older))
	require.NoError(t, r.Create(ctx, newer))

	newer.Kudos, newer.Liked = 4, true
	require.NoError(t, r.Update(ctx, newer))

	got, err := r.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]community.Post{newer, older}, got); diff != "" {
		t.Fatalf("feed mismatch (-want +got):\n%s", diff)
	}

	_, err = r.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, community.ErrNotFound)
}

func TestActivityRepo_UpsertAndRange(t *testing.T) {
	r := NewActivityRepo(openTestDB(t))
	ctx := context.Background()

	day := time.Date(2025, time.December, 2, 0, 0, 0, 0, time.UTC)
	rec := time.Date(2025, time.December, 2, 18, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, activity.DayActivity{ID: "a1", Day: day, Steps: 4000, DistanceKm: 3, RecordedAt: rec}))
	second := activity.DayActivity{ID: "a1", Day: day, Steps: 9000, DistanceKm: 6.5, ActiveHours: 1.5, Calories: 320, RecordedAt: rec.Add(time.Hour)}
	require.NoError(t, r.Upsert(ctx, second))
	prev := activity.DayActivity{ID: "a0", Day: day.AddDate(0, 0, -1), Steps: 7000, DistanceKm: 5, RecordedAt: rec.AddDate(0, 0, -1)}
	require.NoError(t, r.Upsert(ctx, prev))

	got, err := r.GetByDay(ctx, day)
	require.NoError(t, err)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Fatalf("day mismatch (-want +got):\n%s", diff)
	}

	list, err := r.ListBetween(ctx, day.AddDate(0, 0, -6), day)
	require.NoError(t, err)
	if diff := cmp.Diff([]activity.DayActivity{second, prev}, list); diff != "" {
		t.Fatalf("range mismatch (-want +got):\n%s", diff)
	}

	_, err = r.GetByDay(ctx, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, activity.ErrNotFound)
}
