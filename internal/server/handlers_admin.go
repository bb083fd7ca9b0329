package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Austin-TB/RxU-backend/internal/errors"
)

func (s *Server) handleCacheRefresh(c echo.Context) error {
	drugName := c.QueryParam("drug_name")
	if drugName == "" {
		return apperrors.ValidationError("missing required query parameter 'drug_name'")
	}

	document := s.sentiment.ForceFetch(c.Request().Context(), drugName)
	if err := c.JSON(200, document); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCacheClear(c echo.Context) error {
	ctx := c.Request().Context()

	if drugName := c.QueryParam("drug_name"); drugName != "" {
		if err := s.sentiment.ClearCache(ctx, drugName); err != nil {
			return apperrors.InternalError("failed to clear cache entry", err).WithField("drug_name", drugName)
		}
		if err := c.JSON(200, map[string]string{"status": "ok", "drug_name": drugName}); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	cleared, err := s.sentiment.ClearAllCache(ctx)
	if err != nil {
		return apperrors.InternalError("failed to clear cache", err)
	}
	if err := c.JSON(200, map[string]any{"status": "ok", "cleared": cleared}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
