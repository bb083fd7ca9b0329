package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Root banner
	s.echo.GET("/", s.handleRoot)

	// Drug API
	s.echo.GET("/api/drugs/search", s.handleSearchDrugs)
	s.echo.GET("/api/drugs/info", s.handleDrugInfo)
	s.echo.GET("/api/drugs/random", s.handleRandomDrugs)
	s.echo.GET("/api/drugs/sentiment", s.handleDrugSentiment)
	s.echo.GET("/api/drugs/sentiment/available", s.handleAvailableDrugs)
	s.echo.GET("/api/drugs/recommend", s.handleRecommendDrugs)
	s.echo.GET("/api/drugs/side-effects", s.handleSideEffects)

	// Cache maintenance (operational, not called by the frontend)
	s.echo.POST("/admin/cache/refresh", s.handleCacheRefresh)
	s.echo.DELETE("/admin/cache", s.handleCacheClear)
}
