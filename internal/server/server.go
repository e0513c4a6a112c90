// Package server exposes the processing pipeline over HTTP.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LCLAMEDIA/openorders/internal/config"
	"github.com/LCLAMEDIA/openorders/internal/pipeline"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router    *gin.Engine
	cfg       *config.AppConfig
	store     *store.Store
	processor *pipeline.Processor
	log       *zap.Logger
}

// NewServer wires the router, store and processor.
func NewServer(cfg *config.AppConfig, st *store.Store, processor *pipeline.Processor, log *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		router:    gin.New(),
		cfg:       cfg,
		store:     st,
		processor: processor,
		log:       log,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/health", s.Health)

		oor := api.Group("/oor")
		{
			oor.POST("/process", s.ProcessReport)
			oor.GET("/runs", s.ListRuns)
			oor.GET("/runs/:id", s.GetRun)
			oor.GET("/exports/:name", s.DownloadExport)
		}
	}
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.log.Info("server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}
