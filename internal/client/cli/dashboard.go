package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/client/form"
)

func (a *App) showDashboard(ctx context.Context) error {
	fmt.Fprintln(a.out, "Dashboard")
	return a.WhoAmI(ctx)
}

// WhoAmI prints what is known about the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	email := a.form.State().Email
	fmt.Fprintf(a.out, "Signed in as %s\n", email)

	session := a.form.Session()
	if session == nil {
		return nil
	}
	if session.Subject != "" {
		fmt.Fprintf(a.out, "User id: %s\n", session.Subject)
	}
	if !session.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Token expires at %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Status checks that the auth server is reachable.
func (a *App) Status(ctx context.Context) error {
	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	if err := a.api.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "ping failed", "error", err)
		fmt.Fprintln(a.out, "Server is unreachable")
		return err
	}
	fmt.Fprintln(a.out, "Server is reachable")
	return nil
}

// Logout forgets the session and returns to an empty login form.
func (a *App) Logout(ctx context.Context) error {
	a.form.Reset()
	a.Navigate(ctx, form.RouteLogin)
	fmt.Fprintln(a.out, "Logged out")
	return a.ShowForm(ctx)
}
