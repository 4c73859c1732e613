package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"zoomieband/internal/platform/logger"
)

type testRepo struct {
	saved   *Profile
	loadErr error
	saveErr error
	saves   int
}

func (r *testRepo) Load(ctx context.Context) (Profile, error) {
	if r.loadErr != nil {
		return Profile{}, r.loadErr
	}
	if r.saved == nil {
		return Profile{}, ErrNotFound
	}
	return *r.saved, nil
}

func (r *testRepo) Save(ctx context.Context, p Profile) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = &p
	return nil
}

func TestOpen_DefaultsOnFirstRun(t *testing.T) {
	repo := &testRepo{}
	s, err := Open(context.Background(), repo, nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), s.Get())
}

func TestOpen_UsesSavedProfile(t *testing.T) {
	saved := Profile{Name: "Luna", Breed: "Husky", Birthday: time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), Version: 4}
	repo := &testRepo{saved: &saved}

	s, err := Open(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, saved, s.Get())
}

func TestOpen_LoadError(t *testing.T) {
	repo := &testRepo{loadErr: errors.New("disk gone")}
	_, err := Open(context.Background(), repo, nil)
	assert.Error(t, err)
}

func TestOpen_SavesOnCommit(t *testing.T) {
	repo := &testRepo{}
	s, err := Open(context.Background(), repo, nil, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	d := s.BeginEdit()
	d.Name = "Rex"
	require.NoError(t, s.Commit(d))

	require.NotNil(t, repo.saved)
	assert.Equal(t, "Rex", repo.saved.Name)
	assert.Equal(t, int64(1), repo.saved.Version)
}

func TestOpen_SaveFailureIsLoggedAndCommitKept(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	repo := &testRepo{saveErr: errors.New("read-only")}

	s, err := Open(context.Background(), repo, logger.NewFromCore(core), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	d := s.BeginEdit()
	d.Name = "Rex"
	require.NoError(t, s.Commit(d))

	assert.Equal(t, "Rex", s.Get().Name)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 1, logs.FilterMessage("profile save failed").Len())
}

func TestOpen_NilRepo(t *testing.T) {
	s, err := Open(context.Background(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Commit(s.BeginEdit()))
}
