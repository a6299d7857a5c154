package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/inboxd/inboxd/api/handlers"
	"github.com/inboxd/inboxd/api/middleware"
	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, cfg *config.Config, log logger.Logger) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if cfg == nil {
		panic("Config cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// setup handlers
	apiHandlers := handlers.InitHandlers(s, cfg.ResendConfig, log)

	// Health check endpoint (no auth)
	r.GET("/health", handlers.HealthCheck)

	// Webhook endpoints authenticate with svix signatures, not the API key
	webhooks := r.Group("/webhooks/resend")
	{
		webhooks.POST("/email-received", apiHandlers.Webhooks.EmailReceived())
		webhooks.POST("/email-status", apiHandlers.Webhooks.EmailStatus())
	}

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-INBOXD-API-KEY",
		ValidAPIKey: cfg.AppConfig.APIKey,
	})

	// API group with version and custom context
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.CustomContextMiddleware("inboxd"))
	api.Use(middleware.TracingMiddleware())
	{
		// Email endpoints
		emails := api.Group("/emails")
		{
			emails.GET("/inbox", apiHandlers.Emails.ListInbox())
			emails.GET("/sent", apiHandlers.Emails.ListSent())
			emails.GET("/unread", apiHandlers.Emails.ListUnread())
			emails.GET("/stats", apiHandlers.Emails.Stats())
			emails.GET("/senders", apiHandlers.Emails.SenderBreakdown())
			emails.POST("", apiHandlers.Emails.Send())
			emails.GET("/:id", apiHandlers.Emails.Get())
			emails.GET("/:id/content", apiHandlers.Emails.GetContent())
			emails.GET("/:id/attachments/:attachmentId", apiHandlers.Emails.GetAttachment())
			emails.POST("/:id/read", apiHandlers.Emails.MarkAsRead())
			emails.POST("/:id/unread", apiHandlers.Emails.MarkAsUnread())
			emails.POST("/:id/spam", apiHandlers.Emails.MarkAsSpam())
			emails.POST("/:id/notspam", apiHandlers.Emails.MarkAsNotSpam())
			emails.DELETE("/:id", apiHandlers.Emails.Delete())
		}

		// Blocklist endpoints
		blocklist := api.Group("/blocklist")
		{
			blocklist.GET("", apiHandlers.Blocklist.List())
			blocklist.POST("", apiHandlers.Blocklist.Block())
			blocklist.DELETE("/:email", apiHandlers.Blocklist.Unblock())
		}
	}
}
