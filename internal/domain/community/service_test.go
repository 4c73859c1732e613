package community

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID   map[string]Post
	getErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Post{}}
}

func (r *testRepo) Create(ctx context.Context, p Post) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Post) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Post, error) {
	if r.getErr != nil {
		return Post{}, r.getErr
	}
	p, ok := r.byID[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Post, error) {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func TestPost_ToggleKudos(t *testing.T) {
	p := Post{Kudos: 12}

	p.ToggleKudos()
	assert.True(t, p.Liked)
	assert.Equal(t, 13, p.Kudos)

	p.ToggleKudos()
	assert.False(t, p.Liked)
	assert.Equal(t, 12, p.Kudos)
}

func TestPost_ToggleKudos_NeverNegative(t *testing.T) {
	p := Post{Kudos: 0, Liked: true}
	p.ToggleKudos()
	assert.False(t, p.Liked)
	assert.Equal(t, 0, p.Kudos)
}

func TestService_SeedSamples_NewestFirst(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 12, 4, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.SeedSamples(context.Background()))
	require.NoError(t, svc.SeedSamples(context.Background()))

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Willi", items[0].PetName)
	assert.Equal(t, "Bodhi", items[3].PetName)
	assert.Equal(t, now.Add(-2*time.Hour), items[0].CreatedAt)
}

func TestService_ToggleKudos(t *testing.T) {
	svc := NewService(newTestRepo())
	p, err := svc.Create(context.Background(), CreateInput{PetName: "Max", ActivityTitle: "Park Run", Kudos: 5})
	require.NoError(t, err)

	liked, err := svc.ToggleKudos(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, liked.Kudos)

	unliked, err := svc.ToggleKudos(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, unliked.Kudos)
	assert.False(t, unliked.Liked)

	_, err = svc.ToggleKudos(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ToggleKudos_RepoFailureIsNotNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	repo.getErr = errors.New("connection refused")
	_, err := svc.ToggleKudos(context.Background(), "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, repo.getErr)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{PetName: " ", ActivityTitle: "Walk"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateInput{PetName: "Max", ActivityTitle: "Walk", Kudos: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
