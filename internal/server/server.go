package server

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Austin-TB/RxU-backend/internal/config"
	"github.com/Austin-TB/RxU-backend/internal/domain"
	"github.com/Austin-TB/RxU-backend/internal/drugs"
	apperrors "github.com/Austin-TB/RxU-backend/internal/errors"
	"github.com/Austin-TB/RxU-backend/internal/logging"
	"github.com/Austin-TB/RxU-backend/internal/metrics"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	sentiment domain.SentimentService
	drugs     *drugs.Service
	startTime time.Time
}

func NewServer(cfg *config.Config, sentiment domain.SentimentService, drugSvc *drugs.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(requestContextMiddleware)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.DELETE, echo.OPTIONS},
	}))
	e.Use(requestMetricsMiddleware)
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		sentiment: sentiment,
		drugs:     drugSvc,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

// requestContextMiddleware carries the request ID into the request context
// so that slog handlers can attach it to every log line.
func requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx := logging.WithRequestID(c.Request().Context(), requestID)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func requestMetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Response().Status)).Inc()
		return err
	}
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
