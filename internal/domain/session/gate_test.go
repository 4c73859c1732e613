package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"zoomieband/internal/platform/logger"
	"zoomieband/internal/ports/flags"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// -------------------------
// Fakes
// -------------------------

type fakeVerifier struct {
	loginErr    error
	registerErr error
	signOutErr  error

	// gate opcional: si no es nil, VerifyLogin espera a que se cierre
	// (o a que se cancele ctx, como haría un cliente HTTP real).
	release chan struct{}
	// afterLogin corre cuando VerifyLogin ya decidió el éxito.
	afterLogin func()

	logins    atomic.Int32
	registers atomic.Int32
	signOuts  atomic.Int32
}

func (v *fakeVerifier) VerifyLogin(ctx context.Context, email, password string) error {
	v.logins.Add(1)
	if v.release != nil {
		select {
		case <-v.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if v.loginErr == nil && v.afterLogin != nil {
		v.afterLogin()
	}
	return v.loginErr
}

func (v *fakeVerifier) CreateAccount(ctx context.Context, email, password string) error {
	v.registers.Add(1)
	return v.registerErr
}

func (v *fakeVerifier) SignOut(ctx context.Context) error {
	v.signOuts.Add(1)
	return v.signOutErr
}

type fakeFlags struct {
	mu     sync.Mutex
	values map[string]bool
	getErr error
	setErr error
	writes []bool

	// honourCtx hace que SetBool falle con un ctx cancelado, como sqlite/postgres.
	honourCtx bool
}

func newFakeFlags() *fakeFlags {
	return &fakeFlags{values: map[string]bool{}}
}

func (f *fakeFlags) GetBool(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return false, f.getErr
	}
	return f.values[key], nil
}

func (f *fakeFlags) SetBool(ctx context.Context, key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, value)
	if f.honourCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func newGate(t *testing.T, v *fakeVerifier, f *fakeFlags) *Gate {
	t.Helper()
	return NewGate(context.Background(), v, f, nil)
}

func fillValid(g *Gate) {
	g.UpdateEmail("ab@b.co")
	g.UpdatePassword("123456")
}

// -------------------------
// Input hygiene
// -------------------------

func TestSubmissionEnabled_Boundaries(t *testing.T) {
	cases := []struct {
		email    string
		password string
		want     bool
	}{
		{"a@b.co", "123456", false},  // email de 6
		{"ab@b.co", "123456", true},  // email de 7 con '@'
		{"abcdefg", "123456", false}, // 7 sin '@'
		{"ab@b.co", "12345", false},  // password de 5
		{"ab@b.co", "1234567", true},
		{"", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SubmissionEnabled(tc.email, tc.password), "email=%q password=%q", tc.email, tc.password)
	}
}

func TestUpdate_StoresVerbatimAndRecomputes(t *testing.T) {
	g := newGate(t, &fakeVerifier{}, newFakeFlags())

	st := g.UpdateEmail(" ab@b.co")
	assert.Equal(t, " ab@b.co", st.Email)
	assert.False(t, st.SubmissionEnabled)

	st = g.UpdatePassword("123456")
	assert.True(t, st.SubmissionEnabled)

	st = g.UpdatePassword("12345")
	assert.False(t, st.SubmissionEnabled)
}

// -------------------------
// Initial state
// -------------------------

func TestNewGate_ReadsPersistedFlag(t *testing.T) {
	f := newFakeFlags()
	f.values[flags.KeyLoggedIn] = true

	g := newGate(t, &fakeVerifier{}, f)
	assert.Equal(t, StatusLoggedIn, g.State().Status())
}

func TestNewGate_FlagReadErrorStartsLoggedOut(t *testing.T) {
	f := newFakeFlags()
	f.getErr = errors.New("corrupt")

	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGate(context.Background(), &fakeVerifier{}, f, logger.NewFromCore(core))

	assert.False(t, g.Authenticated())
	assert.Equal(t, 1, logs.FilterMessage("read persisted login flag failed").Len())
}

func TestNewGate_NilFlagStore(t *testing.T) {
	g := NewGate(context.Background(), &fakeVerifier{}, nil, nil)
	fillValid(g)
	require.NoError(t, g.SubmitLogin(context.Background()))
	assert.True(t, g.Authenticated())
}

// -------------------------
// Login
// -------------------------

func TestSubmitLogin_Disabled_NoVerifierCall(t *testing.T) {
	v := &fakeVerifier{}
	g := newGate(t, v, newFakeFlags())
	g.UpdateEmail("a@b.co")
	g.UpdatePassword("123456")

	err := g.SubmitLogin(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionDisabled)
	assert.Equal(t, int32(0), v.logins.Load())
	assert.False(t, g.Authenticated())
}

func TestSubmitLogin_Success_PersistsFlag(t *testing.T) {
	v := &fakeVerifier{}
	f := newFakeFlags()
	g := newGate(t, v, f)
	fillValid(g)

	require.NoError(t, g.SubmitLogin(context.Background()))

	st := g.State()
	assert.Equal(t, StatusLoggedIn, st.Status())
	assert.Equal(t, "ab@b.co", st.Email)
	assert.True(t, st.SubmissionEnabled, "inputs are kept after login")
	assert.Equal(t, []bool{true}, f.writes)
	assert.True(t, f.values[flags.KeyLoggedIn])
}

func TestSubmitLogin_Failure_SurfacesProviderMessage(t *testing.T) {
	v := &fakeVerifier{loginErr: errors.New("The password is invalid.")}
	f := newFakeFlags()
	g := newGate(t, v, f)
	fillValid(g)

	err := g.SubmitLogin(context.Background())

	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, OpLogin, authErr.Op)
	assert.Equal(t, "The password is invalid.", authErr.Message)
	assert.Equal(t, "LOGIN ERROR: The password is invalid.", err.Error())
	assert.ErrorIs(t, err, v.loginErr)

	assert.False(t, g.Authenticated())
	assert.Empty(t, f.writes)
	assert.True(t, g.State().SubmissionEnabled, "inputs left as-is")
}

func TestSubmitLogin_FlagWriteFailureStillLogsIn(t *testing.T) {
	f := newFakeFlags()
	f.setErr = errors.New("disk full")

	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGate(context.Background(), &fakeVerifier{}, f, logger.NewFromCore(core))
	fillValid(g)

	require.NoError(t, g.SubmitLogin(context.Background()))
	assert.True(t, g.Authenticated())
	assert.Equal(t, 1, logs.FilterMessage("persist login flag failed").Len())
}

func TestSubmitLogin_ConcurrentDuplicatesShareOneCall(t *testing.T) {
	v := &fakeVerifier{release: make(chan struct{})}
	g := newGate(t, v, newFakeFlags())
	fillValid(g)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = g.SubmitLogin(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return v.logins.Load() == 1 }, time.Second, time.Millisecond)
	// Damos tiempo a que el resto se sume al vuelo en curso.
	time.Sleep(50 * time.Millisecond)
	close(v.release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), v.logins.Load())
	assert.True(t, g.Authenticated())
}

func TestSubmitLogin_DifferentPasswordsAreNotShared(t *testing.T) {
	v := &fakeVerifier{release: make(chan struct{})}
	g := newGate(t, v, newFakeFlags())
	fillValid(g)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = g.SubmitLogin(context.Background())
	}()
	require.Eventually(t, func() bool { return v.logins.Load() == 1 }, time.Second, time.Millisecond)

	g.UpdatePassword("654321")
	go func() {
		defer wg.Done()
		_ = g.SubmitLogin(context.Background())
	}()
	require.Eventually(t, func() bool { return v.logins.Load() == 2 }, time.Second, time.Millisecond)

	close(v.release)
	wg.Wait()
	assert.Equal(t, int32(2), v.logins.Load())
}

func TestSubmitLogin_CallerCancelAfterSuccessStillPersists(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := &fakeVerifier{afterLogin: cancel}
	f := newFakeFlags()
	f.honourCtx = true
	g := newGate(t, v, f)
	fillValid(g)

	require.NoError(t, g.SubmitLogin(ctx))
	assert.True(t, g.Authenticated())
	assert.True(t, f.values[flags.KeyLoggedIn])

	restarted := NewGate(context.Background(), &fakeVerifier{}, f, nil)
	assert.True(t, restarted.Authenticated())
}

func TestSubmitLogin_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	v := &fakeVerifier{release: make(chan struct{})}
	g := newGate(t, v, newFakeFlags())
	fillValid(g)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	var first, second error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = g.SubmitLogin(firstCtx)
	}()
	require.Eventually(t, func() bool { return v.logins.Load() == 1 }, time.Second, time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		second = g.SubmitLogin(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(v.release)
	wg.Wait()

	assert.NoError(t, first)
	assert.NoError(t, second)
	assert.Equal(t, int32(1), v.logins.Load())
	assert.True(t, g.Authenticated())
}

// -------------------------
// Registration
// -------------------------

func TestSubmitRegistration_Success_ClearsPasswordOnly(t *testing.T) {
	v := &fakeVerifier{}
	f := newFakeFlags()
	g := newGate(t, v, f)
	fillValid(g)

	res, err := g.SubmitRegistration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RegistrationNotice, res.Notice)
	assert.Equal(t, "ab@b.co", res.Email)

	st := g.State()
	assert.Equal(t, StatusLoggedOut, st.Status())
	assert.Equal(t, "ab@b.co", st.Email)
	assert.False(t, st.SubmissionEnabled, "password was cleared")
	assert.Empty(t, f.writes)

	_, password, _ := g.credentials()
	assert.Equal(t, "", password)
}

func TestSubmitRegistration_Failure(t *testing.T) {
	v := &fakeVerifier{registerErr: errors.New("EMAIL_EXISTS")}
	g := newGate(t, v, newFakeFlags())
	fillValid(g)

	_, err := g.SubmitRegistration(context.Background())

	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, OpRegister, authErr.Op)
	assert.Equal(t, "EMAIL_EXISTS", authErr.Message)
	assert.True(t, g.State().SubmissionEnabled)
}

func TestSubmitRegistration_Disabled(t *testing.T) {
	v := &fakeVerifier{}
	g := newGate(t, v, newFakeFlags())

	_, err := g.SubmitRegistration(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionDisabled)
	assert.Equal(t, int32(0), v.registers.Load())
}

// -------------------------
// Logout
// -------------------------

func TestLogout_Success(t *testing.T) {
	f := newFakeFlags()
	f.values[flags.KeyLoggedIn] = true
	g := newGate(t, &fakeVerifier{}, f)

	require.NoError(t, g.Logout(context.Background()))
	assert.Equal(t, StatusLoggedOut, g.State().Status())
	assert.Equal(t, []bool{false}, f.writes)
}

func TestLogout_FailureKeepsLoggedInAndLogs(t *testing.T) {
	f := newFakeFlags()
	f.values[flags.KeyLoggedIn] = true

	core, logs := observer.New(zapcore.DebugLevel)
	v := &fakeVerifier{signOutErr: errors.New("keychain locked")}
	g := NewGate(context.Background(), v, f, logger.NewFromCore(core))

	err := g.Logout(context.Background())

	var soErr *SignOutError
	require.True(t, errors.As(err, &soErr))
	assert.True(t, g.Authenticated())
	assert.Empty(t, f.writes)
	assert.Equal(t, 1, logs.FilterMessage("sign out failed").Len())
}

func TestStateMachine_Cycles(t *testing.T) {
	g := newGate(t, &fakeVerifier{}, newFakeFlags())
	fillValid(g)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.SubmitLogin(context.Background()))
		assert.Equal(t, StatusLoggedIn, g.State().Status())
		require.NoError(t, g.Logout(context.Background()))
		assert.Equal(t, StatusLoggedOut, g.State().Status())
	}
}

// -------------------------
// Async
// -------------------------

func TestAsync_DeliversExactlyOneOutcome(t *testing.T) {
	g := newGate(t, &fakeVerifier{}, newFakeFlags())
	fillValid(g)

	out := <-g.SubmitRegistrationAsync(context.Background())
	assert.Equal(t, OpRegister, out.Op)
	require.NoError(t, out.Err)
	require.NotNil(t, out.Registration)
	assert.Equal(t, RegistrationNotice, out.Registration.Notice)

	g.UpdatePassword("123456")
	ch := g.SubmitLoginAsync(context.Background())
	out = <-ch
	assert.Equal(t, OpLogin, out.Op)
	assert.NoError(t, out.Err)
	_, open := <-ch
	assert.False(t, open)

	out = <-g.LogoutAsync(context.Background())
	assert.Equal(t, OpLogout, out.Op)
	assert.NoError(t, out.Err)
	assert.False(t, g.Authenticated())
}

func TestAsync_FailureVariant(t *testing.T) {
	g := newGate(t, &fakeVerifier{loginErr: errors.New("nope")}, newFakeFlags())
	fillValid(g)

	out := <-g.SubmitLoginAsync(context.Background())
	var authErr *AuthenticationError
	assert.True(t, errors.As(out.Err, &authErr))
	assert.Nil(t, out.Registration)
}
