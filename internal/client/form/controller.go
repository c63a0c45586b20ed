package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/client/client"
	"github.com/dmitrijs2005/opmlogin/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrValidation     = errors.New("email and password are required")
	ErrSubmitInFlight = errors.New("login already in progress")
	ErrCancelled      = errors.New("login cancelled")
	ErrNotImplemented = errors.New("not implemented")
)

// Success toast contents.
const (
	SuccessTitle       = "Login Successful"
	SuccessDescription = "You have been logged in."
	SuccessDuration    = 3 * time.Second
)

// DefaultRequestTimeout replaces a non-positive Settings.RequestTimeout.
const DefaultRequestTimeout = 2 * time.Second

// Authenticator performs the login request. client.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
}

// Notification is one toast.
type Notification struct {
	Title       string
	Description string
	Status      string
	Duration    time.Duration
}

// Notifier shows transient notifications (toasts).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Navigator performs client-side route changes.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// Settings tune Submit.
type Settings struct {
	// RequestTimeout bounds each login request, and with it the in-flight
	// flag. A reply arriving later counts as a failed attempt even if the
	// server accepted the credentials. Non-positive values mean
	// DefaultRequestTimeout.
	RequestTimeout time.Duration
	// FallbackErrorMessage is shown when a failed login carries no
	// structured error text. Empty keeps ErrorMessage unset.
	FallbackErrorMessage string
}

// Controller owns a ViewState and runs login attempts against an
// Authenticator. Its methods are safe for concurrent use.
type Controller struct {
	auth      Authenticator
	notifier  Notifier
	navigator Navigator
	logger    logging.Logger
	settings  Settings

	mu      sync.Mutex
	state   ViewState
	attempt uint64
	cancel  context.CancelFunc
	session *client.LoginResult

	newAttemptID func() string
}

// NewController returns a controller showing an empty form. A nil logger
// discards output; notifier and navigator may be nil.
func NewController(auth Authenticator, notifier Notifier, navigator Navigator, logger logging.Logger, settings Settings) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	if settings.RequestTimeout <= 0 {
		settings.RequestTimeout = DefaultRequestTimeout
	}
	return &Controller{
		auth:         auth,
		notifier:     notifier,
		navigator:    navigator,
		logger:       logger,
		settings:     settings,
		state:        NewViewState(),
		newAttemptID: uuid.NewString,
	}
}

// State returns a snapshot of the form.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the result of the last successful login, nil after Reset.
func (c *Controller) Session() *client.LoginResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) dispatch(e Event) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Apply(e)
	return c.state
}

func (c *Controller) SetEmail(text string) {
	c.dispatch(EmailChanged{Text: text})
}

func (c *Controller) SetPassword(text string) {
	c.dispatch(PasswordChanged{Text: text})
}

// ToggleVisibility flips password masking and returns the new setting.
func (c *Controller) ToggleVisibility() bool {
	return c.dispatch(VisibilityToggled{}).ShowPassword
}

// ForgotPassword is the inert "Forgot Password?" control.
func (c *Controller) ForgotPassword() error {
	return ErrNotImplemented
}

// Submit runs one login attempt and blocks until it resolves. Its outcome is
// always reflected in State; the returned error only says why the attempt
// did not succeed:
//
//   - ErrSubmitInFlight: another attempt is outstanding, nothing changed;
//   - ErrValidation: a field is empty, no request was sent;
//   - ErrCancelled: Cancel, Reset or ctx stopped the attempt;
//   - anything else: the request failed, see ViewState.ErrorMessage.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	c.state = c.state.Apply(SubmitRequested{})
	if !c.state.Submitting {
		c.mu.Unlock()
		c.logger.Debug(ctx, "login form invalid")
		return ErrValidation
	}

	email, password := c.state.Email, c.state.Password
	c.attempt++
	attempt := c.attempt
	id := c.newAttemptID()

	reqCtx, cancel := c.requestContext(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	log := c.logger.With("attempt", id)
	log.Info(ctx, "login submitted", "email", email)

	res, err := c.auth.Login(client.WithRequestID(reqCtx, id), email, password)

	c.mu.Lock()
	if attempt != c.attempt {
		// Cancel or Reset already settled the state for this attempt.
		c.mu.Unlock()
		log.Info(ctx, "stale login result dropped")
		return ErrCancelled
	}
	c.cancel = nil

	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		c.state = c.state.Apply(SubmitCancelled{})
		c.mu.Unlock()
		log.Info(ctx, "login cancelled")
		return ErrCancelled
	}

	if err != nil {
		msg, ok := client.ServerMessage(err)
		if !ok {
			msg = c.settings.FallbackErrorMessage
		}
		c.state = c.state.Apply(LoginFailed{Message: msg})
		c.mu.Unlock()
		log.Warn(ctx, "login failed", "error", err)
		return fmt.Errorf("login: %w", err)
	}

	c.state = c.state.Apply(LoginSucceeded{})
	c.session = res
	route := c.state.Route
	c.mu.Unlock()

	log.Info(ctx, "login succeeded")

	if c.notifier != nil {
		c.notifier.Notify(ctx, Notification{
			Title:       SuccessTitle,
			Description: SuccessDescription,
			Status:      "success",
			Duration:    SuccessDuration,
		})
	}
	if c.navigator != nil {
		c.navigator.Navigate(ctx, route)
	}
	return nil
}

func (c *Controller) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.settings.RequestTimeout)
}

// Cancel aborts the outstanding attempt, if any. Its result, should it still
// arrive, is ignored.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Controller) cancelLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.attempt++
	c.state = c.state.Apply(SubmitCancelled{})
}

// Reset cancels any attempt, forgets the session and shows an empty form.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.session = nil
	c.state = c.state.Apply(Reset{})
}
