package client

import (
	"context"
	"time"
)

type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Ping(ctx context.Context) error
}

// LoginResult is what a successful login yields. Token is empty when the
// server sent none; Subject, Email and ExpiresAt are filled only when the
// token is a JWT carrying those claims.
type LoginResult struct {
	Token     string
	Subject   string
	Email     string
	ExpiresAt time.Time
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; HTTPClient sends it as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
