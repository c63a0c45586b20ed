package form

import (
	"strings"

	"github.com/dmitrijs2005/opmlogin/internal/common"
)

// Routes the form can navigate to.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard"
)

// MaskRune replaces each password character while the password is hidden.
const MaskRune = '•'

// ViewState is the complete state of the login form. Empty strings mean
// "absent" for the three error fields.
type ViewState struct {
	Email        string
	Password     string
	ShowPassword bool

	EmailError    string
	PasswordError string
	ErrorMessage  string

	Submitting bool
	Route      string
}

// NewViewState returns the state of a freshly mounted form.
func NewViewState() ViewState {
	return ViewState{Route: RouteLogin}
}

// Valid reports whether both fields are non-empty.
func (s ViewState) Valid() bool {
	return s.Email != "" && s.Password != ""
}

// HasErrors reports whether any error text is shown.
func (s ViewState) HasErrors() bool {
	return s.EmailError != "" || s.PasswordError != "" || s.ErrorMessage != ""
}

// RenderedPassword is the password as the form displays it.
func (s ViewState) RenderedPassword() string {
	if s.ShowPassword {
		return s.Password
	}
	return strings.Repeat(string(MaskRune), len([]rune(s.Password)))
}

// Event is anything that can change a ViewState.
type Event interface {
	apply(ViewState) ViewState
}

// Apply returns the state after e. s is not modified.
func (s ViewState) Apply(e Event) ViewState {
	return e.apply(s)
}

// EmailChanged replaces the email with Text.
type EmailChanged struct{ Text string }

func (e EmailChanged) apply(s ViewState) ViewState {
	s.Email = e.Text
	return s
}

// PasswordChanged replaces the password with Text.
type PasswordChanged struct{ Text string }

func (e PasswordChanged) apply(s ViewState) ViewState {
	s.Password = e.Text
	return s
}

// VisibilityToggled flips password masking.
type VisibilityToggled struct{}

func (VisibilityToggled) apply(s ViewState) ViewState {
	s.ShowPassword = !s.ShowPassword
	return s
}

// SubmitRequested clears all errors, flags empty fields and raises the
// in-flight flag only when the form is valid.
type SubmitRequested struct{}

func (SubmitRequested) apply(s ViewState) ViewState {
	s.EmailError = ""
	s.PasswordError = ""
	s.ErrorMessage = ""

	if s.Email == "" {
		s.EmailError = common.EmailRequiredMessage
	}
	if s.Password == "" {
		s.PasswordError = common.PasswordRequiredMessage
	}

	s.Submitting = s.Valid()
	return s
}

// LoginSucceeded ends the attempt and moves to the dashboard.
type LoginSucceeded struct{}

func (LoginSucceeded) apply(s ViewState) ViewState {
	s.Submitting = false
	s.Route = RouteDashboard
	return s
}

// LoginFailed carries the message to display; "" leaves ErrorMessage unset.
type LoginFailed struct{ Message string }

func (e LoginFailed) apply(s ViewState) ViewState {
	s.Submitting = false
	s.ErrorMessage = e.Message
	return s
}

// SubmitCancelled ends the attempt without touching the error fields.
type SubmitCancelled struct{}

func (SubmitCancelled) apply(s ViewState) ViewState {
	s.Submitting = false
	return s
}

// Reset discards the draft and returns to the login route.
type Reset struct{}

func (Reset) apply(ViewState) ViewState {
	return NewViewState()
}
