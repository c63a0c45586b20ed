// Package form implements the login form controller.
//
// The whole form is one value, ViewState. It only changes through
// ViewState.Apply, a pure function from (state, event) to the next state, so
// every field is updated together and no partial update is observable.
//
// Controller owns the current ViewState and runs the single side-effecting
// operation, Submit: it validates, sends one login request through an
// Authenticator, and on success shows a toast and navigates to the dashboard.
// The in-flight flag (ViewState.Submitting) follows the request itself:
// it is raised when the request is issued and lowered when that request
// succeeds, fails or is cancelled. Requests are bounded by a timeout, so the
// flag never stays raised longer than that.
//
// A second Submit while a request is outstanding is rejected with
// ErrSubmitInFlight; results of cancelled attempts are dropped.
package form
