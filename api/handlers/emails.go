package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	pkgerr "github.com/pkg/errors"

	custom_err "github.com/inboxd/inboxd/api/errors"
	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/tracing"
)

type EmailsHandler struct {
	emails interfaces.EmailService
	spam   interfaces.SpamService
}

func NewEmailsHandler(emails interfaces.EmailService, spam interfaces.SpamService) *EmailsHandler {
	return &EmailsHandler{
		emails: emails,
		spam:   spam,
	}
}

// ListInbox returns inbox messages, newest first. The filter query parameter
// selects the slice: default hides spam, "spam" shows only spam, "all" shows
// everything.
func (h *EmailsHandler) ListInbox() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.ListInbox")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		filter := enum.InboxFilter(c.Query("filter"))
		switch filter {
		case enum.InboxFilterDefault, enum.InboxFilterAll, enum.InboxFilterSpam:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter"})
			return
		}

		emails, err := h.emails.ListInbox(ctx, filter)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to list inbox", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"emails": dto.MapEmailsToResponse(emails)})
	}
}

func (h *EmailsHandler) ListSent() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.ListSent")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		emails, err := h.emails.ListSent(ctx)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to list sent emails", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"emails": dto.MapEmailsToResponse(emails)})
	}
}

func (h *EmailsHandler) ListUnread() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.ListUnread")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		emails, err := h.emails.ListUnread(ctx)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to list unread emails", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"emails": dto.MapEmailsToResponse(emails)})
	}
}

func (h *EmailsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.Get")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		email, err := h.emails.GetByID(ctx, c.Param("id"))
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to load email", err)
			return
		}
		if email == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}

		c.JSON(http.StatusOK, dto.MapEmailToResponse(email))
	}
}

// GetContent proxies the message body from the provider; bodies are not
// stored locally.
func (h *EmailsHandler) GetContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.GetContent")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		content, err := h.emails.GetContent(ctx, c.Param("id"))
		if err != nil {
			if pkgerr.Is(err, er.ErrEmailNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
				return
			}
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to fetch email content", err)
			return
		}

		c.JSON(http.StatusOK, content)
	}
}

func (h *EmailsHandler) GetAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.GetAttachment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		attachment, err := h.emails.GetAttachment(ctx, c.Param("id"), c.Param("attachmentId"))
		if err != nil {
			if pkgerr.Is(err, er.ErrEmailNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
				return
			}
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to fetch attachment", err)
			return
		}

		c.JSON(http.StatusOK, attachment)
	}
}

// Send handles the HTTP request to send a new email
func (h *EmailsHandler) Send() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.Send")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.SendEmailRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			h.respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		errs := validateSendRequest(&request)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		email, err := h.emails.Send(ctx, request)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to send email", err)
			return
		}

		c.JSON(http.StatusOK, dto.MapEmailToResponse(email))
	}
}

func (h *EmailsHandler) MarkAsRead() gin.HandlerFunc {
	return h.updateReadState("EmailsHandler.MarkAsRead", true)
}

func (h *EmailsHandler) MarkAsUnread() gin.HandlerFunc {
	return h.updateReadState("EmailsHandler.MarkAsUnread", false)
}

func (h *EmailsHandler) updateReadState(operationName string, read bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), operationName)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		var err error
		if read {
			err = h.emails.MarkAsRead(ctx, c.Param("id"))
		} else {
			err = h.emails.MarkAsUnread(ctx, c.Param("id"))
		}
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to update read state", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Updated"})
	}
}

// MarkAsSpam flags a message as spam, optionally blocking the sender for
// future mail.
func (h *EmailsHandler) MarkAsSpam() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.MarkAsSpam")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		var request struct {
			BlockSender bool `json:"blockSender"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&request); err != nil {
				h.respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
				return
			}
		}

		if err := h.spam.MarkAsSpam(ctx, c.Param("id"), request.BlockSender); err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to mark email as spam", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Updated"})
	}
}

func (h *EmailsHandler) MarkAsNotSpam() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.MarkAsNotSpam")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		if err := h.spam.MarkAsNotSpam(ctx, c.Param("id")); err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to restore email from spam", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Updated"})
	}
}

func (h *EmailsHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.Delete")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		if err := h.emails.Delete(ctx, c.Param("id")); err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to delete email", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}

func (h *EmailsHandler) Stats() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.Stats")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		stats, err := h.emails.GetStats(ctx)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to compute stats", err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

func (h *EmailsHandler) SenderBreakdown() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.SenderBreakdown")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		limit, _ := strconv.Atoi(c.Query("limit"))

		senders, err := h.emails.GetSenderBreakdown(ctx, limit)
		if err != nil {
			h.respondWithError(c, span, http.StatusInternalServerError, "Failed to compute sender breakdown", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"senders": senders})
	}
}

// Helper method to respond with an error
func (h *EmailsHandler) respondWithError(c *gin.Context, span opentracing.Span, statusCode int, message string, err error) {
	tracing.TraceErr(span, err)
	c.JSON(statusCode, gin.H{"error": message, "details": err.Error()})
}

// validateSendRequest performs initial validation on the request
func validateSendRequest(request *dto.SendEmailRequest) *custom_err.MultiErrors {
	errs := custom_err.NewMultiErrors()

	if request.From == "" {
		errs.Add("from", "please provide a valid from address", pkgerr.New("from is empty"))
	}

	if len(request.To) == 0 {
		errs.Add("to", "please provide at least one valid to address", pkgerr.New("to is empty"))
	}

	if request.HTML == "" && request.Text == "" {
		errs.Add("body", "please provide a valid html or text body (or both)", pkgerr.New("body is empty"))
	}

	return errs
}
