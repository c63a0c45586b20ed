package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/dmitrijs2005/opmlogin/internal/server/auth"
	"github.com/labstack/echo/v4"
)

func (s *Server) login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
	}

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "login rejected", "email", req.Email)
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: common.InvalidCredentialsMessage})
		}
		s.logger.Error(ctx, "login failed", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	s.logger.Info(ctx, "logged in", "email", req.Email)
	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (s *Server) health(c echo.Context) error {
	if s.db != nil {
		if err := s.db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Database unavailable"})
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) me(c echo.Context) error {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return c.JSON(http.StatusOK, MeResponse{ID: claims.Subject, Email: claims.Email})
}
