// Package rest exposes the authentication API over HTTP/JSON using echo.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/dmitrijs2005/opmlogin/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// UserService is what the handlers need from the user domain.
type UserService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address   string
	e         *echo.Echo
	users     UserService
	db        Pinger
	logger    logging.Logger
	jwtSecret []byte
}

// NewServer builds the router. db may be nil, in which case the health
// endpoint does not check storage.
func NewServer(address string, l logging.Logger, us UserService, db Pinger, secretKey string) *Server {
	s := &Server{
		address:   address,
		e:         echo.New(),
		users:     us,
		db:        db,
		logger:    l.With("module", "rest_server"),
		jwtSecret: []byte(secretKey),
	}

	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.Validator = NewValidator()

	s.e.Use(middleware.Recover())
	s.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.RequestIDHeaderName,
	}))
	s.e.Use(s.requestLogger())
	s.e.Use(middleware.CORS())

	s.e.POST(common.LoginPath, s.login)
	s.e.GET(common.HealthPath, s.health)
	s.e.GET(common.MePath, s.me, s.requireToken)

	return s
}

// ServeHTTP lets the server be driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
