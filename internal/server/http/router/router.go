package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/handlers"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TuckshopFacade, queue handlers.Enqueuer, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	shopHandler := handlers.NewShopHandler(facade)
	fulfillmentHandler := handlers.NewFulfillmentHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(queue, cfg.WebhookVerifyToken)

	engine.GET("/webhook", webhookHandler.Verify)
	engine.POST("/webhook", webhookHandler.Receive)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/cart", shopHandler.AddItem)
	userAuth.GET("/cart", shopHandler.Cart)
	userAuth.POST("/checkout", shopHandler.Checkout)
	userAuth.GET("/orders", shopHandler.Orders)

	api.POST("/payments/confirm", fulfillmentHandler.ConfirmPayment)
	api.POST("/pickup/verify", fulfillmentHandler.VerifyPickup)

	return engine
}
