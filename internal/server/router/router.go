package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/autodiag/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(diag *handlers.DiagnosticsHandler, vehicle *handlers.VehicleHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/diagnostics/charging", diag.ClassifyCharging)
		api.GET("/diagnostics/exception", diag.Exception)

		api.POST("/vehicles/:id/mileage", vehicle.AddMileage)
		api.GET("/vehicles/:id/mileage", vehicle.ListMileage)
		api.POST("/vehicles/:id/maintenance", vehicle.AddMaintenance)
		api.GET("/vehicles/:id/maintenance", vehicle.ListMaintenance)
		api.GET("/vehicles/:id/summary", vehicle.Summary)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
