package profile

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 12, 2, 9, 30, 0, 0, time.UTC)

func newTestStore(opts ...Option) *Store {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewStore(Default(), opts...)
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, "Golden Retriever", p.Breed)
	assert.Equal(t, time.Date(2017, time.July, 29, 12, 0, 0, 0, time.Local), p.Birthday)
}

func TestAgeYears_MatchesFormula(t *testing.T) {
	birthdays := []time.Time{
		fixedNow,
		fixedNow.Add(-23 * time.Hour),
		fixedNow.AddDate(0, 0, -1),
		fixedNow.AddDate(0, -6, 0),
		fixedNow.AddDate(-1, 0, 0),
		time.Date(2017, time.July, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2001, time.February, 28, 0, 0, 0, 0, time.UTC),
	}

	for _, bd := range birthdays {
		days := math.Floor(fixedNow.Sub(bd).Hours() / 24)
		want := math.Round((days/365.25)*10) / 10

		got := AgeYears(bd, fixedNow)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Equal(t, want, got, "birthday %s", bd)
	}
}

func TestAgeYears_KnownValues(t *testing.T) {
	bd := time.Date(2017, time.July, 29, 12, 0, 0, 0, time.UTC)
	// 3048 días / 365.25 = 8.345 -> 8.3
	assert.Equal(t, 8.3, AgeYears(bd, time.Date(2025, time.December, 2, 12, 0, 0, 0, time.UTC)))

	// 365 días / 365.25 = 0.9993 -> 1.0
	assert.Equal(t, 1.0, AgeYears(bd, bd.AddDate(0, 0, 365)))
}

func TestAgeYears_FutureBirthdayIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AgeYears(fixedNow.Add(time.Second), fixedNow))
	assert.Equal(t, 0.0, AgeYears(fixedNow.AddDate(5, 0, 0), fixedNow))
}

func TestGet_Idempotent(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, s.Get(), s.Get())
}

func TestBeginEdit_DoesNotTouchStore(t *testing.T) {
	s := newTestStore()
	before := s.Get()

	d := s.BeginEdit()
	assert.Equal(t, before.Name, d.Name)
	d.Name = "Rex"

	assert.Equal(t, before, s.Get())
}

func TestCommit_ReplacesAllFieldsAndNotifiesOnce(t *testing.T) {
	s := newTestStore()

	var calls []Profile
	s.Subscribe(func(p Profile) { calls = append(calls, p) })

	d := s.BeginEdit()
	d.Name = "Rex"
	d.Breed = "Beagle"
	d.Birthday = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Commit(d))

	got := s.Get()
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "Beagle", got.Breed)
	assert.Equal(t, d.Birthday, got.Birthday)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, fixedNow, got.UpdatedAt)

	require.Len(t, calls, 1)
	assert.Equal(t, got, calls[0])
}

func TestCommit_LastWriterWins(t *testing.T) {
	s := newTestStore()

	d1 := s.BeginEdit()
	d2 := s.BeginEdit()
	d1.Name = "Rex"
	d2.Name = "Bolt"

	require.NoError(t, s.Commit(d1))
	require.NoError(t, s.Commit(d2))

	assert.Equal(t, "Bolt", s.Get().Name)
	assert.Equal(t, int64(2), s.Get().Version)
}

func TestCommit_ValidationLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	before := s.Get()

	notified := false
	s.Subscribe(func(Profile) { notified = true })

	d := s.BeginEdit()
	d.Name = "  "
	d.Breed = ""
	d.Birthday = fixedNow.Add(24 * time.Hour)

	err := s.Commit(d)
	require.Error(t, err)

	var invalid *InvalidProfileError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{FieldName, FieldBreed, FieldBirthday}, invalid.Fields)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, before, s.Get())
	assert.False(t, notified)
}

func TestCommit_BirthdayEqualToNowIsValid(t *testing.T) {
	s := newTestStore()
	d := s.BeginEdit()
	d.Birthday = fixedNow
	assert.NoError(t, s.Commit(d))
}

func TestCommit_LenientAcceptsAnything(t *testing.T) {
	s := newTestStore(Lenient())

	d := Draft{Name: "", Breed: "", Birthday: fixedNow.AddDate(1, 0, 0)}
	require.NoError(t, s.Commit(d))

	assert.Equal(t, "", s.Get().Name)
	assert.Equal(t, 0.0, s.AgeYears(fixedNow))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := newTestStore()

	count := 0
	unsubscribe := s.Subscribe(func(Profile) { count++ })

	require.NoError(t, s.Commit(s.BeginEdit()))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Commit(s.BeginEdit()))

	assert.Equal(t, 1, count)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	s := newTestStore()

	var seen Profile
	s.Subscribe(func(p Profile) { seen = s.Get() })

	d := s.BeginEdit()
	d.Name = "Rex"
	require.NoError(t, s.Commit(d))

	assert.Equal(t, "Rex", seen.Name)
}

func TestSubscribe_EveryListenerCalled(t *testing.T) {
	s := newTestStore()

	var a, b int
	s.Subscribe(func(Profile) { a++ })
	s.Subscribe(func(Profile) { b++ })
	s.Subscribe(nil)()

	require.NoError(t, s.Commit(s.BeginEdit()))
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestCommit_ConcurrentReadersNeverSeeMixedTriple(t *testing.T) {
	s := newTestStore()

	old := s.Get()
	next := Draft{Name: "Rex", Breed: "Beagle", Birthday: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				p := s.Get()
				isOld := p.Name == old.Name && p.Breed == old.Breed && p.Birthday.Equal(old.Birthday)
				isNew := p.Name == next.Name && p.Breed == next.Breed && p.Birthday.Equal(next.Birthday)
				if !isOld && !isNew {
					t.Errorf("mixed snapshot: %+v", p)
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		d := next
		if i%2 == 1 {
			d = Draft{Name: old.Name, Breed: old.Breed, Birthday: old.Birthday}
		}
		require.NoError(t, s.Commit(d))
	}
	close(stop)
	wg.Wait()
}
