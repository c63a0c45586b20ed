package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type loginCall struct {
	Email     string
	Password  string
	RequestID string
}

type fakeAuth struct {
	mu    sync.Mutex
	calls []loginCall

	result *client.LoginResult
	err    error

	// block, when set, holds Login until it is closed or ctx is done.
	block chan struct{}
	// ignoreCtx makes a blocked Login wait for block only.
	ignoreCtx bool
	started   chan struct{}
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*client.LoginResult, error) {
	id, _ := client.RequestIDFromContext(ctx)
	f.mu.Lock()
	f.calls = append(f.calls, loginCall{Email: email, Password: password, RequestID: id})
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		if f.ignoreCtx {
			<-f.block
		} else {
			select {
			case <-f.block:
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", client.ErrUnavailable, ctx.Err())
			}
		}
	}
	return f.result, f.err
}

func (f *fakeAuth) Calls() []loginCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]loginCall(nil), f.calls...)
}

type recNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *recNotifier) Notify(_ context.Context, note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
}

type recNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recNavigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

type fixture struct {
	auth *fakeAuth
	note *recNotifier
	nav  *recNavigator
	ctrl *Controller
}

func newFixture(t *testing.T, auth *fakeAuth, settings Settings) *fixture {
	t.Helper()
	f := &fixture{auth: auth, note: &recNotifier{}, nav: &recNavigator{}}
	f.ctrl = NewController(auth, f.note, f.nav, nil, settings)
	f.ctrl.newAttemptID = func() string { return "attempt-id" }
	return f
}

func fill(c *Controller, email, password string) {
	c.SetEmail(email)
	c.SetPassword(password)
}

// ---- validation ----

func TestSubmit_BothEmpty(t *testing.T) {
	f := newFixture(t, &fakeAuth{}, Settings{})

	err := f.ctrl.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)

	s := f.ctrl.State()
	assert.Equal(t, "Email is required", s.EmailError)
	assert.Equal(t, "Password is required", s.PasswordError)
	assert.Empty(t, s.ErrorMessage)
	assert.False(t, s.Submitting)
	assert.Empty(t, f.auth.Calls())
}

func TestSubmit_PasswordEmpty(t *testing.T) {
	f := newFixture(t, &fakeAuth{}, Settings{})
	f.ctrl.SetEmail("user@example.com")

	require.ErrorIs(t, f.ctrl.Submit(context.Background()), ErrValidation)

	s := f.ctrl.State()
	assert.Empty(t, s.EmailError)
	assert.Equal(t, "Password is required", s.PasswordError)
	assert.Empty(t, f.auth.Calls())
}

// ---- request ----

func TestSubmit_SendsExactlyOneRequest(t *testing.T) {
	f := newFixture(t, &fakeAuth{result: &client.LoginResult{}}, Settings{})
	fill(f.ctrl, "user@example.com", " spaced pass ")

	require.NoError(t, f.ctrl.Submit(context.Background()))

	assert.Equal(t, []loginCall{{Email: "user@example.com", Password: " spaced pass ", RequestID: "attempt-id"}}, f.auth.Calls())
}

func TestSubmit_Success(t *testing.T) {
	res := &client.LoginResult{Token: "t", Email: "user@example.com"}
	f := newFixture(t, &fakeAuth{result: res}, Settings{})
	fill(f.ctrl, "user@example.com", "secret")

	require.NoError(t, f.ctrl.Submit(context.Background()))

	s := f.ctrl.State()
	assert.False(t, s.HasErrors())
	assert.False(t, s.Submitting)
	assert.Equal(t, RouteDashboard, s.Route)
	assert.Same(t, res, f.ctrl.Session())

	require.Len(t, f.note.sent, 1)
	assert.Equal(t, "Login Successful", f.note.sent[0].Title)
	assert.Equal(t, "You have been logged in.", f.note.sent[0].Description)
	assert.Equal(t, "success", f.note.sent[0].Status)
	assert.Equal(t, []string{"/dashboard"}, f.nav.routes)
}

func TestSubmit_FailureWithServerMessage(t *testing.T) {
	auth := &fakeAuth{err: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}}
	f := newFixture(t, auth, Settings{FallbackErrorMessage: "Login failed"})
	fill(f.ctrl, "user@example.com", "wrong")

	err := f.ctrl.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	s := f.ctrl.State()
	assert.Equal(t, "Invalid credentials", s.ErrorMessage)
	assert.False(t, s.Submitting)
	assert.Equal(t, RouteLogin, s.Route)
	assert.Empty(t, f.nav.routes)
	assert.Empty(t, f.note.sent)
	assert.Nil(t, f.ctrl.Session())
}

func TestSubmit_FailureWithoutServerMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{name: "api error, no fallback", err: &client.APIError{StatusCode: 500}},
		{name: "transport error, no fallback", err: client.ErrUnavailable},
		{name: "api error, fallback", err: &client.APIError{StatusCode: 500}, fallback: "Login failed", want: "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &fakeAuth{err: tt.err}, Settings{FallbackErrorMessage: tt.fallback})
			fill(f.ctrl, "user@example.com", "x")

			require.Error(t, f.ctrl.Submit(context.Background()))

			s := f.ctrl.State()
			assert.Equal(t, tt.want, s.ErrorMessage)
			assert.False(t, s.Submitting)
			assert.Empty(t, f.nav.routes)
		})
	}
}

func TestSubmit_ResubmitClearsPreviousError(t *testing.T) {
	auth := &fakeAuth{err: &client.APIError{StatusCode: 401, Message: "Invalid credentials"}}
	f := newFixture(t, auth, Settings{})
	fill(f.ctrl, "user@example.com", "wrong")
	require.Error(t, f.ctrl.Submit(context.Background()))

	f.ctrl.SetPassword("")
	require.ErrorIs(t, f.ctrl.Submit(context.Background()), ErrValidation)

	s := f.ctrl.State()
	assert.Empty(t, s.ErrorMessage)
	assert.Equal(t, "Password is required", s.PasswordError)
	assert.Len(t, auth.Calls(), 1)
}

// ---- visibility ----

func TestToggleVisibility(t *testing.T) {
	f := newFixture(t, &fakeAuth{}, Settings{})
	f.ctrl.SetPassword("hunter2")
	before := f.ctrl.State().RenderedPassword()

	assert.True(t, f.ctrl.ToggleVisibility())
	assert.Equal(t, "hunter2", f.ctrl.State().RenderedPassword())
	assert.False(t, f.ctrl.ToggleVisibility())

	s := f.ctrl.State()
	assert.Equal(t, before, s.RenderedPassword())
	assert.Equal(t, "hunter2", s.Password)
}

// ---- in-flight lifecycle ----

func submitAsync(ctx context.Context, c *Controller) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Submit(ctx) }()
	return done
}

func TestSubmit_InFlightClearedByTimeout(t *testing.T) {
	auth := &fakeAuth{block: make(chan struct{}), started: make(chan struct{}, 1)}
	t.Cleanup(func() { close(auth.block) })
	f := newFixture(t, auth, Settings{RequestTimeout: 2 * time.Second})
	fill(f.ctrl, "user@example.com", "x")

	start := time.Now()
	done := submitAsync(context.Background(), f.ctrl)
	<-auth.started
	assert.True(t, f.ctrl.State().Submitting)

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		t.Fatal("submit did not resolve after the request timeout")
	}

	assert.LessOrEqual(t, time.Since(start), 2500*time.Millisecond)
	s := f.ctrl.State()
	assert.False(t, s.Submitting)
	assert.Empty(t, s.ErrorMessage)
}

func TestNewController_NonPositiveTimeoutUsesDefault(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		f := newFixture(t, &fakeAuth{}, Settings{RequestTimeout: timeout})
		assert.Equal(t, DefaultRequestTimeout, f.ctrl.settings.RequestTimeout)
	}
}

func TestSubmit_ZeroTimeoutStillBoundsInFlight(t *testing.T) {
	auth := &fakeAuth{block: make(chan struct{}), started: make(chan struct{}, 1)}
	t.Cleanup(func() { close(auth.block) })
	f := newFixture(t, auth, Settings{})
	fill(f.ctrl, "user@example.com", "x")

	done := submitAsync(context.Background(), f.ctrl)
	<-auth.started

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(DefaultRequestTimeout + time.Second):
		t.Fatal("submit did not resolve after the default request timeout")
	}
	assert.False(t, f.ctrl.State().Submitting)
}

func TestSubmit_RejectsResubmissionWhileInFlight(t *testing.T) {
	auth := &fakeAuth{block: make(chan struct{}), started: make(chan struct{}, 1), result: &client.LoginResult{}}
	f := newFixture(t, auth, Settings{})
	fill(f.ctrl, "user@example.com", "x")

	done := submitAsync(context.Background(), f.ctrl)
	<-auth.started

	require.ErrorIs(t, f.ctrl.Submit(context.Background()), ErrSubmitInFlight)
	assert.True(t, f.ctrl.State().Submitting)

	close(auth.block)
	require.NoError(t, <-done)
	assert.Len(t, auth.Calls(), 1)
	assert.Equal(t, []string{"/dashboard"}, f.nav.routes)
}

func TestCancel_DropsLateResult(t *testing.T) {
	auth := &fakeAuth{
		block:     make(chan struct{}),
		ignoreCtx: true,
		started:   make(chan struct{}, 1),
		result:    &client.LoginResult{},
	}
	f := newFixture(t, auth, Settings{})
	fill(f.ctrl, "user@example.com", "x")

	done := submitAsync(context.Background(), f.ctrl)
	<-auth.started

	f.ctrl.Cancel()
	assert.False(t, f.ctrl.State().Submitting)

	close(auth.block)
	require.ErrorIs(t, <-done, ErrCancelled)

	s := f.ctrl.State()
	assert.Equal(t, RouteLogin, s.Route)
	assert.Empty(t, f.nav.routes)
	assert.Empty(t, f.note.sent)
	assert.Nil(t, f.ctrl.Session())
}

func TestSubmit_ParentContextCancelled(t *testing.T) {
	auth := &fakeAuth{block: make(chan struct{}), started: make(chan struct{}, 1)}
	t.Cleanup(func() { close(auth.block) })
	f := newFixture(t, auth, Settings{RequestTimeout: time.Minute})
	fill(f.ctrl, "user@example.com", "x")

	ctx, cancel := context.WithCancel(context.Background())
	done := submitAsync(ctx, f.ctrl)
	<-auth.started
	cancel()

	require.ErrorIs(t, <-done, ErrCancelled)
	s := f.ctrl.State()
	assert.False(t, s.Submitting)
	assert.Empty(t, s.ErrorMessage)
}

func TestCancel_NoAttemptIsNoop(t *testing.T) {
	f := newFixture(t, &fakeAuth{}, Settings{})
	fill(f.ctrl, "a", "b")
	before := f.ctrl.State()

	f.ctrl.Cancel()
	assert.Equal(t, before, f.ctrl.State())
}

func TestReset(t *testing.T) {
	f := newFixture(t, &fakeAuth{result: &client.LoginResult{Token: "t"}}, Settings{})
	fill(f.ctrl, "user@example.com", "x")
	f.ctrl.ToggleVisibility()
	require.NoError(t, f.ctrl.Submit(context.Background()))

	f.ctrl.Reset()

	assert.Equal(t, NewViewState(), f.ctrl.State())
	assert.Nil(t, f.ctrl.Session())
}

func TestForgotPassword_IsInert(t *testing.T) {
	f := newFixture(t, &fakeAuth{}, Settings{})
	fill(f.ctrl, "user@example.com", "x")
	before := f.ctrl.State()

	assert.True(t, errors.Is(f.ctrl.ForgotPassword(), ErrNotImplemented))
	assert.Equal(t, before, f.ctrl.State())
	assert.Empty(t, f.auth.Calls())
}

// ---- over HTTP ----

func TestController_WithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	nav := &recNavigator{}
	ctrl := NewController(client.NewHTTPClient(srv.URL), &recNotifier{}, nav, nil, Settings{RequestTimeout: 2 * time.Second})
	fill(ctrl, "user@example.com", "wrong")

	require.Error(t, ctrl.Submit(context.Background()))
	assert.Equal(t, "Invalid credentials", ctrl.State().ErrorMessage)
	assert.Empty(t, nav.routes)
}
