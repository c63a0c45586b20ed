package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/dmitrijs2005/opmlogin/internal/server/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const claimsKey = "claims"

// requireToken accepts "Authorization: Bearer <jwt>" and stores the verified
// claims under claimsKey.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing token"})
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired"
			}
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

// requestLogger writes one structured line per request.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				s.logger.Error(ctx, "request", append(args, "error", v.Error)...)
				return nil
			}
			s.logger.Info(ctx, "request", args...)
			return nil
		},
	})
}
