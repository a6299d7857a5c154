package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/tracing"
)

type BlocklistHandler struct {
	blocklist interfaces.BlocklistService
}

func NewBlocklistHandler(blocklist interfaces.BlocklistService) *BlocklistHandler {
	return &BlocklistHandler{
		blocklist: blocklist,
	}
}

func (h *BlocklistHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "BlocklistHandler.List")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		senders, err := h.blocklist.List(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blocked senders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"blockedSenders": senders})
	}
}

// Block adds a blocklist rule. With domainWide set the rule covers every
// address on the sender's domain.
func (h *BlocklistHandler) Block() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "BlocklistHandler.Block")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.BlockSenderRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		if request.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		id, err := h.blocklist.Block(ctx, request.Email, request.DomainWide, request.Reason)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block sender"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// Unblock removes the rule for an address. Absent rules are a no-op; stored
// mail is never re-classified.
func (h *BlocklistHandler) Unblock() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "BlocklistHandler.Unblock")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		email := c.Param("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		if err := h.blocklist.Unblock(ctx, email); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock sender"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Unblocked"})
	}
}
