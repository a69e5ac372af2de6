package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/metrics"
)

// NewRouter builds the gin engine with all API routes registered
func NewRouter(cfg *config.Config, projectionHandler *ProjectionHandler, modelHandler *ModelHandler, logger *logrus.Logger) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/projections", projectionHandler.CreateProjection)
		v1.GET("/models", modelHandler.ListModels)
		v1.POST("/models/train", modelHandler.TriggerTraining)
		v1.POST("/models/:id/activate", modelHandler.ActivateModel)
	}

	return router
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})

		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Debug("Request handled")
		}
	}
}
