// Package router assembles the Gin engine and mounts the API surface.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config carries everything the router needs to mount the API
type Config struct {
	AppConfig  config.AppConfig
	HTTPConfig config.HTTPConfig

	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist

	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Review    *handler.ReviewHandler
	Analytics *handler.AnalyticsHandler
}

// New builds the Gin engine with the full route table.
//
// Reads on products and reviews are public; the cart, orders and reviews
// writes require a valid access token; order administration, product
// writes and analytics additionally require the admin role.
func New(cfg Config) *gin.Engine {
	if cfg.AppConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)
	if len(cfg.HTTPConfig.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTPConfig.TrustedProxies)
	}
	if len(cfg.HTTPConfig.CORSAllowOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.HTTPConfig.CORSAllowOrigins))
	}

	engine.GET("/health", cfg.System.Health)
	engine.GET("/ready", cfg.System.Ready)

	api := engine.Group("/api")
	if cfg.HTTPConfig.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			cfg.HTTPConfig.RateLimitRequests, cfg.HTTPConfig.RateLimitWindow)
		api.Use(middleware.RateLimit(limiter))
	}

	requireAuth := middleware.RequireAuth(cfg.JWTService, cfg.Blacklist, cfg.Logger)
	requireAdmin := middleware.RequireAdmin()

	authGroup := api.Group("/auth")
	if cfg.HTTPConfig.AuthRateLimitEnabled {
		// Stricter bucket against credential stuffing
		limiter := middleware.NewRateLimiter(
			cfg.HTTPConfig.AuthRateLimitRequests, cfg.HTTPConfig.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(limiter))
	}
	authGroup.POST("/register", cfg.Auth.Register)
	authGroup.POST("/login", cfg.Auth.Login)
	authGroup.POST("/refresh", cfg.Auth.Refresh)
	authGroup.POST("/logout", requireAuth, cfg.Auth.Logout)
	authGroup.GET("/me", requireAuth, cfg.Auth.Me)
	authGroup.PUT("/password", requireAuth, cfg.Auth.ChangePassword)

	products := api.Group("/products")
	products.GET("", cfg.Product.List)
	products.GET("/:id", cfg.Product.Get)
	products.POST("", requireAuth, requireAdmin, cfg.Product.Create)
	products.PUT("/:id", requireAuth, requireAdmin, cfg.Product.Update)
	products.DELETE("/:id", requireAuth, requireAdmin, cfg.Product.Delete)

	cart := api.Group("/cart", requireAuth)
	cart.GET("", cfg.Cart.Get)
	cart.POST("/add", cfg.Cart.AddItem)
	cart.PUT("/update", cfg.Cart.UpdateItem)
	cart.DELETE("/remove/:productId", cfg.Cart.RemoveItem)
	cart.DELETE("/clear", cfg.Cart.Clear)

	orders := api.Group("/orders", requireAuth)
	orders.POST("", cfg.Order.Place)
	orders.GET("", cfg.Order.List)
	orders.GET("/all", requireAdmin, cfg.Order.ListAll)
	orders.GET("/:id", cfg.Order.Get)
	orders.PUT("/:id/cancel", cfg.Order.Cancel)
	orders.PUT("/:id/status", requireAdmin, cfg.Order.UpdateStatus)

	reviews := api.Group("/reviews")
	reviews.GET("/product/:productId", cfg.Review.ListByProduct)
	reviews.GET("/product/:productId/mine", requireAuth, cfg.Review.Mine)
	reviews.POST("/product/:productId", requireAuth, cfg.Review.Create)
	reviews.PUT("/:reviewId", requireAuth, cfg.Review.Update)
	reviews.DELETE("/:reviewId", requireAuth, cfg.Review.Delete)

	analytics := api.Group("/analytics")
	analytics.POST("/visit", cfg.Analytics.RecordVisit)
	analytics.GET("/summary", requireAuth, requireAdmin, cfg.Analytics.Summary)
	analytics.GET("/range", requireAuth, requireAdmin, cfg.Analytics.Range)

	return engine
}
