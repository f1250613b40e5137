// Package server exposes the cleaned dataset over a small HTTP API: the
// filtered rows, the aggregates the dashboard views render, and a CSV
// export of the current selection.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-dashboard/cache"
	"car-dashboard/config"
	"car-dashboard/services"
	"car-dashboard/utils"
)

// Server wires the data cache and insight service to HTTP routes.
type Server struct {
	cfg      *config.Config
	cache    *cache.Cache
	insights *services.InsightService
	logger   *utils.Logger
	engine   *gin.Engine
}

// New builds the router. Gin runs in release mode unless DEBUG is set.
func New(cfg *config.Config, c *cache.Cache, insights *services.InsightService, logger *utils.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		cache:    c,
		insights: insights,
		logger:   logger,
		engine:   engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.GET("/listings", s.handleListings)
	api.GET("/filters", s.handleFilters)
	api.GET("/kpis", s.handleKPIs)
	api.GET("/stats", s.handleStats)
	api.GET("/counts", s.handleCounts)
	api.GET("/brands", s.handleBrands)
	api.GET("/timeline", s.handleTimeline)
	api.GET("/export", s.handleExport)
	api.GET("/meta", s.handleMeta)
	api.POST("/refresh", s.handleRefresh)
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run() error {
	s.logger.Info("[server] listening on %s", s.cfg.ListenAddr)
	return s.engine.Run(s.cfg.ListenAddr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
