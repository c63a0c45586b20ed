// Package common contains constants and sentinel errors shared by the
// client and the dev server.
package common

const (
	// LoginPath is the authentication endpoint, relative to the base URL.
	LoginPath = "/api/login"

	// HealthPath answers 200 while the server is up.
	HealthPath = "/api/health"

	// MePath returns the identity behind a bearer token.
	MePath = "/api/me"

	// RequestIDHeaderName carries the client-side attempt id.
	RequestIDHeaderName = "X-Request-ID"

	// Messages shown by the form and returned by the server for empty fields.
	EmailRequiredMessage    = "Email is required"
	PasswordRequiredMessage = "Password is required"

	// InvalidCredentialsMessage is the server's reply for a bad email/password pair.
	InvalidCredentialsMessage = "Invalid credentials"
)
