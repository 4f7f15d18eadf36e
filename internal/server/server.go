// Package server exposes the tracker over HTTP. Every data route sits behind
// the shared-password admin gate; the frontend is the only expected client,
// so the surface is a small JSON API rather than anything generic.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

type Server struct {
	store store.TrackerStore
	cfg   models.ServerConfig
}

func New(trackerStore store.TrackerStore, cfg models.ServerConfig) *Server {
	return &Server{store: trackerStore, cfg: cfg}
}

// Router builds the gin engine with CORS, the login route and the
// authenticated API group.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/login", s.handleLogin)

	api := r.Group("/api")
	api.Use(s.authRequired())
	{
		api.GET("/state", s.handleState)

		api.GET("/units", s.handleListUnits)
		api.POST("/units", s.handleCreateUnit)
		api.PUT("/units/:id", s.handleUpdateUnit)
		api.DELETE("/units/:id", s.handleDeleteUnit)
		api.POST("/units/import", s.handleImport)

		api.GET("/pricing", s.handlePricing)

		api.GET("/batches", s.handleListBatches)
		api.POST("/batches", s.handleCreateBatch)

		api.GET("/fund/movements", s.handleListFundMovements)
		api.POST("/fund/movements", s.handleAddFundMovement)
		api.DELETE("/fund/movements/:id", s.handleDeleteFundMovement)

		api.GET("/metrics", s.handleMetrics)

		api.GET("/settings/partners", s.handleGetPartnerLabels)
		api.PUT("/settings/partners", s.handleUpdatePartnerLabels)
		api.GET("/settings/models", s.handleGetModelHistory)
	}

	return r
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	zap.L().Info("Starting HTTP server", zap.String("addr", s.cfg.Addr))
	return s.Router().Run(s.cfg.Addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		zap.L().Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
