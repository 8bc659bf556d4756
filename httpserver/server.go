package httpserver

import (
	"context"
	"fmt"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/errs"
	"moviedb/person"
	"moviedb/pkg/config"
	"moviedb/pkg/logger"
	"moviedb/pkg/sentry"
	"moviedb/principal"
	"moviedb/title"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	TitleService     title.Service
	PersonService    person.Service
	PrincipalService principal.Service
	CrewService      crew.Service
	AkaService       aka.Service
	EpisodeService   episode.Service

	// Database, when set, is pinged by the health check.
	Database Pinger

	validator *CustomValidator
}

// Default builds a server with every route registered. Services are read at
// request time, so they may be assigned after Default returns.
func Default(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Empty
	}
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Config:       cfg,
		Logger:       logger.NOOPLogger,
		validator:    NewValidator(),
	}
	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		s.AllowOrigins = origins
	}

	s.Router.HideBanner = true
	s.Router.Binder = JSONBinder{}
	s.Router.Validator = s.validator
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api/v1")
	s.RegisterTitleRoutes(api.Group("/basics"))
	s.RegisterPersonRoutes(api.Group("/names"))
	s.RegisterPrincipalRoutes(api.Group("/principals"))
	s.RegisterCrewRoutes(api.Group("/crews"))
	s.RegisterAkaRoutes(api.Group("/akas"))
	s.RegisterEpisodeRoutes(api.Group("/episodes"))

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	if s.Config.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.Config.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// handleError maps application errors to HTTP statuses and writes the error
// envelope.
func (s *Server) handleError(err error, c echo.Context) {
	status, message := statusOf(err)

	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(), zap.String("request_id", s.requestID(c)))
		sentry.WithContext(c).Error(err)
	} else {
		s.Logger.Debugw(err.Error(), zap.String("request_id", s.requestID(c)))
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = writeError(c, status, message)
	}
	if err != nil {
		s.Logger.Errorw("write error response", zap.Error(err))
	}
}

func statusOf(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	case errs.EUNAVAILABLE:
		return http.StatusServiceUnavailable, errs.ErrorMessage(err)
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
