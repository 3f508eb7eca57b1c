package router

import (
	"net/http"
	"time"

	"shopflow/internal/handlers"
	"shopflow/internal/middleware"
	"shopflow/internal/service"
	"shopflow/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Orders    *service.OrderService
	Analytics *service.AnalyticsService
}

func Router(svcs Services, tokens *token.HSProvider, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authHandler := handlers.NewAuthHandler(svcs.Auth, log)
	productHandler := handlers.NewProductHandler(svcs.Catalog, log)
	cartHandler := handlers.NewCartHandler(svcs.Cart, log)
	orderHandler := handlers.NewOrderHandler(svcs.Orders, log)
	analyticsHandler := handlers.NewAnalyticsHandler(svcs.Analytics, svcs.Catalog, log)

	authRequired := middleware.AuthRequired(tokens, log)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authRequired, authHandler.Me)
		auth.PUT("/password", authRequired, authHandler.ChangePassword)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", authRequired, productHandler.Create)
		products.PUT("/:id", authRequired, productHandler.Update)
		products.PUT("/:id/stock", authRequired, productHandler.UpdateStock)
	}

	cart := api.Group("/cart", authRequired)
	{
		cart.GET("/:userId", cartHandler.List)
		cart.POST("", cartHandler.Add)
		cart.PUT("/:userId/:productId", cartHandler.UpdateQuantity)
		cart.DELETE("/:userId/:productId", cartHandler.Remove)
		cart.DELETE("/:userId", cartHandler.Clear)
	}

	orders := api.Group("/orders", authRequired)
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id/status", orderHandler.UpdateStatus)
		orders.POST("/:id/cancel", orderHandler.Cancel)
	}

	analytics := api.Group("/analytics", authRequired)
	{
		analytics.GET("/metrics", analyticsHandler.Metrics)
		// Low-stock listing lives here rather than under /products/:id to
		// keep the route tree free of static/param conflicts.
		analytics.GET("/low-stock", analyticsHandler.LowStock)
	}

	return r
}
