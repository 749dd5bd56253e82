package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ivmish/teremok/internal/config"
	"github.com/ivmish/teremok/internal/server/http/handlers"
	"github.com/ivmish/teremok/internal/server/http/middleware"
)

// Params collects everything the router needs.
type Params struct {
	fx.In

	Config      *config.Config
	Facade      handlers.AdminFacade
	Broadcaster handlers.Broadcaster
	Sink        handlers.UpdateSink
	Pinger      handlers.Pinger
	Logger      *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))

	authHandler := handlers.NewAuthHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	broadcastHandler := handlers.NewBroadcastHandler(p.Facade, p.Broadcaster)
	healthHandler := handlers.NewHealthHandler(p.Pinger)

	engine.GET("/healthz", healthHandler.Check)

	if p.Config.WebhookSecret != "" {
		webhookHandler := handlers.NewWebhookHandler(p.Config.WebhookSecret, p.Sink)
		engine.POST("/telegram/webhook/:secret", webhookHandler.Receive)
	}

	api := engine.Group("/api")
	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.DecompressRequest())
	adminAuth.Use(gzip.Gzip(gzip.DefaultCompression))
	adminAuth.Use(middleware.AuthRequired(p.Facade))
	adminAuth.GET("/orders", orderHandler.List)
	adminAuth.PATCH("/orders/:id", orderHandler.UpdateStatus)
	adminAuth.DELETE("/orders/:id", orderHandler.Delete)
	adminAuth.GET("/pending", orderHandler.Pending)
	adminAuth.POST("/pending/:id/approve", orderHandler.Approve)
	adminAuth.POST("/pending/:id/decline", orderHandler.Decline)
	adminAuth.POST("/broadcast", broadcastHandler.Send)
	adminAuth.GET("/subscribers", broadcastHandler.Subscribers)
	adminAuth.GET("/unsubscriptions", broadcastHandler.Unsubscriptions)
	adminAuth.GET("/referrals", broadcastHandler.Referrals)

	return engine
}
