package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Austin-TB/RxU-backend/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"cache_dir", s.checkCacheDir},
		{"catalog", s.checkCatalog},
	}

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			return c.JSON(503, map[string]any{
				"status":       "unhealthy",
				"failed_check": check.name,
				"error":        err.Error(),
			})
		}
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

// checkCacheDir verifies the local cache tier exists and is a directory.
func (s *Server) checkCacheDir(_ context.Context) error {
	info, err := os.Stat(s.config.CacheDir)
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cache dir %s is not a directory", s.config.CacheDir)
	}
	return nil
}

// checkCatalog runs a probe search against the drug catalog.
func (s *Server) checkCatalog(ctx context.Context) error {
	if s.drugs == nil {
		return fmt.Errorf("drug catalog not configured")
	}
	_, err := s.drugs.Search(ctx, "a", 1)
	return err
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
