package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/config"
	"github.com/stockmate/stockmate-api/internal/presentation/http/handler"
	"github.com/stockmate/stockmate-api/internal/presentation/http/middleware"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Form      *handler.FormHandler
	Purchase  *handler.PurchaseHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Opening a session is the only unauthenticated call
		v1.POST("/sessions", h.Form.CreateSession)

		// Everything else requires a session token
		protected := v1.Group("")
		protected.Use(middleware.SessionAuthMiddleware(deps.JWTManager))

		// Per-session rate limiter
		rateLimiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Purchase-order form
	form := protected.Group("/purchase-form")
	{
		form.GET("", h.Form.GetState)
		form.POST("/items", h.Form.AddItem)
		form.DELETE("/items/:id", h.Form.RemoveItem)
		form.PATCH("/items/:id", h.Form.UpdateItem)
		form.PATCH("/metadata", h.Form.UpdateMetadata)
		form.POST("/submit", h.Form.Submit)
		form.POST("/cancel", h.Form.Cancel)
	}

	// Recorded purchases
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.Get)
	}

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
}
