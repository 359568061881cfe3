package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/api/handlers"
	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, client *backend.Client, sessions *handlers.SessionStore, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.Default())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Terminal session routes: one session per cashier screen
		v1.POST("/sessions", handlers.HandleOpenSession(client, sessions, logger))
		v1.GET("/sessions/:id", handlers.HandleSessionState(sessions, logger))
		v1.DELETE("/sessions/:id", handlers.HandleCloseSession(sessions, logger))

		v1.POST("/sessions/:id/cart", handlers.HandleAddToCart(sessions, logger))
		v1.PATCH("/sessions/:id/cart/:lineId", handlers.HandleUpdateQuantity(sessions, logger))
		v1.DELETE("/sessions/:id/cart/:lineId", handlers.HandleRemoveLine(sessions, logger))
		v1.POST("/sessions/:id/scan", handlers.HandleScan(sessions, logger))
		v1.PATCH("/sessions/:id/draft", handlers.HandleUpdateDraft(sessions, logger))
		v1.POST("/sessions/:id/checkout", handlers.HandleCheckout(sessions, logger))

		// Invoice view for finished transactions
		v1.GET("/invoices/:id", handlers.HandleGetInvoice(client, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
