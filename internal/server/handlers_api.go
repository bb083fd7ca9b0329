package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Austin-TB/RxU-backend/internal/domain"
	apperrors "github.com/Austin-TB/RxU-backend/internal/errors"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(200, map[string]string{
		"message": "Drug sentiment API is running",
		"docs":    "/api/drugs/search?q=<query>",
	})
}

func (s *Server) handleSearchDrugs(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.ValidationError("missing required query parameter 'q'")
	}

	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperrors.ValidationError("limit must be a positive integer").WithField("limit", raw)
		}
		limit = parsed
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	response, err := s.drugs.Search(c.Request().Context(), query, limit)
	if err != nil {
		return apperrors.InternalError("drug search failed", err).WithField("query", query)
	}

	if err := c.JSON(200, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDrugInfo(c echo.Context) error {
	drugbankID := c.QueryParam("drugbank_id")
	if drugbankID == "" {
		return apperrors.ValidationError("missing required query parameter 'drugbank_id'")
	}

	result, err := s.drugs.Info(c.Request().Context(), drugbankID)
	if err != nil {
		if errors.Is(err, domain.ErrDrugNotFound) {
			return apperrors.NotFoundError("drug not found").WithField("drugbank_id", drugbankID)
		}
		return apperrors.InternalError("drug lookup failed", err).WithField("drugbank_id", drugbankID)
	}

	if err := c.JSON(200, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleRandomDrugs(c echo.Context) error {
	count := 5
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperrors.ValidationError("count must be a positive integer").WithField("count", raw)
		}
		count = parsed
	}
	if count > maxSearchLimit {
		count = maxSearchLimit
	}

	results, err := s.drugs.Random(c.Request().Context(), count)
	if err != nil {
		return apperrors.InternalError("random drug selection failed", err)
	}

	if err := c.JSON(200, map[string]any{"drugs": results, "count": len(results)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDrugSentiment(c echo.Context) error {
	drugName := c.QueryParam("drug_name")
	if drugName == "" {
		return apperrors.ValidationError("missing required query parameter 'drug_name'")
	}

	document := s.sentiment.FetchDrugSentiment(c.Request().Context(), drugName)
	if err := c.JSON(200, document); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAvailableDrugs(c echo.Context) error {
	listing := s.sentiment.ListAvailableDrugs(c.Request().Context())
	if err := c.JSON(200, listing); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleRecommendDrugs(c echo.Context) error {
	drugName := c.QueryParam("drug_name")
	if drugName == "" {
		return apperrors.ValidationError("missing required query parameter 'drug_name'")
	}

	response, err := s.drugs.Recommend(c.Request().Context(), drugName)
	if err != nil {
		return apperrors.InternalError("recommendation lookup failed", err).WithField("drug_name", drugName)
	}

	if err := c.JSON(200, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSideEffects(c echo.Context) error {
	drugName := c.QueryParam("drug_name")
	if drugName == "" {
		return apperrors.ValidationError("missing required query parameter 'drug_name'")
	}

	response, err := s.drugs.SideEffects(c.Request().Context(), drugName)
	if err != nil {
		return apperrors.InternalError("side effects lookup failed", err).WithField("drug_name", drugName)
	}

	if err := c.JSON(200, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
