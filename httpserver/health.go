package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"moviedb/errs"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/health", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and the database answers
// @Tags health
// @Success 200 {object} APIResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.Database != nil {
		if err := s.Database.Ping(c.Request().Context()); err != nil {
			s.Logger.Warnw("health check ping failed", "error", err)
			return errs.Errorf(errs.EUNAVAILABLE, "Database unavailable")
		}
	}
	return writeSuccess(c, http.StatusOK, "OK")
}
