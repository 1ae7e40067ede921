package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardslip/internal/server/handlers"
	"cardslip/internal/service/orders"
)

// New wires the Gin engine with required routes and middlewares.
func New(search *handlers.SearchHandler, order *handlers.OrderHandler, image *handlers.ImageHandler, store *orders.Store, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/image", image.Proxy)
	api.POST("/catalog/refresh", search.Refresh)

	slip := api.Group("", handlers.SessionMiddleware(store))
	slip.GET("/search", search.Search)
	slip.PUT("/selection", order.UpdateSelection)
	slip.POST("/order/items", order.CommitSelection)
	slip.POST("/order/manual", order.AddManual)
	slip.PATCH("/order/items/:index/price", order.EditPrice)
	slip.DELETE("/order/items/:index", order.RemoveLine)
	slip.DELETE("/order", order.Clear)
	slip.GET("/order", order.View)
	slip.GET("/order/print", order.Print)

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
