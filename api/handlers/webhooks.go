package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/services/webhook"
)

// ResendWebhookHandler terminates the Resend webhook endpoints. Both endpoints
// verify the svix signature before touching the payload; each endpoint has its
// own signing secret.
type ResendWebhookHandler struct {
	webhooks interfaces.WebhookService
	cfg      *config.ResendConfig
	log      logger.Logger
}

func NewResendWebhookHandler(webhooks interfaces.WebhookService, cfg *config.ResendConfig, log logger.Logger) *ResendWebhookHandler {
	return &ResendWebhookHandler{
		webhooks: webhooks,
		cfg:      cfg,
		log:      log,
	}
}

// EmailReceived handles inbound message notifications.
func (h *ResendWebhookHandler) EmailReceived() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ResendWebhookHandler.EmailReceived", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentWebhook(span)

		payload, ok := h.verifiedPayload(c, h.cfg.WebhookEmailReceivedSecret)
		if !ok {
			return
		}

		var event dto.EmailReceivedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		if event.Type != dto.EventTypeEmailReceived {
			c.JSON(http.StatusOK, gin.H{"message": "Ignored"})
			return
		}

		id, err := h.webhooks.ProcessEmailReceived(ctx, event)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// EmailStatus handles delivery lifecycle notifications for sent messages.
func (h *ResendWebhookHandler) EmailStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ResendWebhookHandler.EmailStatus", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentWebhook(span)

		payload, ok := h.verifiedPayload(c, h.cfg.WebhookEmailStatusSecret)
		if !ok {
			return
		}

		var event dto.EmailStatusEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		id, err := h.webhooks.ProcessEmailStatus(ctx, event)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			return
		}

		if id == "" {
			c.JSON(http.StatusOK, gin.H{"message": "Ignored"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// verifiedPayload reads the raw body and authenticates it. On failure the
// response has already been written and the caller must return.
func (h *ResendWebhookHandler) verifiedPayload(c *gin.Context, secret string) ([]byte, bool) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return nil, false
	}

	if err := webhook.VerifySignature(secret, payload, c.Request.Header); err != nil {
		switch {
		case errors.Is(err, er.ErrMissingWebhookHeaders):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing svix headers"})
		case errors.Is(err, er.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		case errors.Is(err, er.ErrMissingWebhookSecret):
			h.log.Errorf("Webhook secret is not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		default:
			h.log.Errorf("Webhook verification failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook verification failed"})
		}
		return nil, false
	}

	return payload, true
}
