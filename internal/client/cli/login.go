package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/client/form"
	"github.com/dmitrijs2005/opmlogin/internal/common"
)

// Input seams, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// EnterEmail sets the email to text as typed, or prompts for it when text
// is empty. No trimming happens on either path.
func (a *App) EnterEmail(ctx context.Context, text string) error {
	email := text
	if text == "" {
		text, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			a.logger.Error(ctx, "read email", "error", err)
			return err
		}
		email = text
	}
	a.form.SetEmail(email)
	return nil
}

// EnterPassword prompts for the password, masked unless visibility is on.
func (a *App) EnterPassword(ctx context.Context) error {
	masked := !a.form.State().ShowPassword

	pw, err := getPassword(a.reader, masked, a.out)
	if err != nil {
		a.logger.Error(ctx, "read password", "error", err)
		return err
	}
	defer common.WipeByteArray(pw)

	a.form.SetPassword(string(pw))
	return nil
}

func (a *App) ToggleVisibility(ctx context.Context) error {
	if a.form.ToggleVisibility() {
		fmt.Fprintln(a.out, "Password is visible")
	} else {
		fmt.Fprintln(a.out, "Password is hidden")
	}
	fmt.Fprintf(a.out, "Password: %s\n", a.form.State().RenderedPassword())
	return nil
}

// Submit runs the login attempt in the background and draws a spinner while
// the request is in flight.
func (a *App) Submit(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- a.form.Submit(ctx) }()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	var err error
wait:
	for {
		select {
		case err = <-done:
			break wait
		case <-ticker.C:
			if a.form.State().Submitting {
				fmt.Fprintf(a.out, "\rLogging in %c", spinnerFrames[frame%len(spinnerFrames)])
				frame++
			}
		}
	}
	if frame > 0 {
		fmt.Fprint(a.out, "\r             \r")
	}

	switch {
	case err == nil:
		return a.showDashboard(ctx)
	case errors.Is(err, form.ErrSubmitInFlight):
		fmt.Fprintln(a.out, "A login is already in progress")
	case errors.Is(err, form.ErrCancelled):
		fmt.Fprintln(a.out, "Login cancelled")
	default:
		a.printErrors(a.form.State())
	}
	return err
}

// ForgotPassword is inert.
func (a *App) ForgotPassword(ctx context.Context) error {
	err := a.form.ForgotPassword()
	fmt.Fprintln(a.out, "Password reset is not available")
	return err
}

// ShowForm renders the whole login form.
func (a *App) ShowForm(ctx context.Context) error {
	s := a.form.State()

	fmt.Fprintln(a.out, "Login to get started")
	fmt.Fprintf(a.out, "  Email:    %s\n", s.Email)
	if s.EmailError != "" {
		fmt.Fprintf(a.out, "            ! %s\n", s.EmailError)
	}

	visibility := "hidden"
	if s.ShowPassword {
		visibility = "visible"
	}
	fmt.Fprintf(a.out, "  Password: %s (%s)\n", s.RenderedPassword(), visibility)
	if s.PasswordError != "" {
		fmt.Fprintf(a.out, "            ! %s\n", s.PasswordError)
	}
	fmt.Fprintln(a.out, "  Forgot Password?")

	if s.ErrorMessage != "" {
		fmt.Fprintf(a.out, "! %s\n", s.ErrorMessage)
	}
	return nil
}

func (a *App) printErrors(s form.ViewState) {
	for _, msg := range []string{s.EmailError, s.PasswordError, s.ErrorMessage} {
		if msg != "" {
			fmt.Fprintf(a.out, "! %s\n", msg)
		}
	}
}
