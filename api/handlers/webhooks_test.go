package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/mocks"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/services/blocklist"
	"github.com/inboxd/inboxd/services/spam"
	"github.com/inboxd/inboxd/services/webhook"
)

const (
	receivedSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
	statusSecret   = "whsec_C2FVsBQIhrscChlQIMV+b5sSYspob7oD"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func setupRouter(t *testing.T, cfg *config.ResendConfig) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := &repository.Repositories{
		EmailRepository:         mocks.NewInMemoryEmailRepository(),
		BlockedSenderRepository: mocks.NewInMemoryBlockedSenderRepository(),
	}
	bl := blocklist.NewBlocklistService(repos)
	spamSvc := spam.NewSpamService(repos, bl)
	webhookSvc := webhook.NewWebhookService(repos, spamSvc, nil, getLogger())

	handler := NewResendWebhookHandler(webhookSvc, cfg, getLogger())

	router := gin.New()
	router.POST("/webhooks/resend/email-received", handler.EmailReceived())
	router.POST("/webhooks/resend/email-status", handler.EmailStatus())
	return router, repos
}

func sign(t *testing.T, secret, msgID, timestamp string, payload []byte) string {
	t.Helper()

	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	require.NoError(t, err)

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func signedRequest(t *testing.T, path, secret string, payload []byte) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	msgID := "msg_test"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", timestamp)
	req.Header.Set("svix-signature", sign(t, secret, msgID, timestamp, payload))
	return req
}

func receivedPayload(resendID string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "email.received",
		"data": {
			"email_id": %q,
			"from": "John Doe <john@example.com>",
			"to": ["me@inboxd.dev"],
			"subject": "Hello"
		}
	}`, resendID))
}

func TestEmailReceived_ValidSignature(t *testing.T) {
	router, repos := setupRouter(t, &config.ResendConfig{WebhookEmailReceivedSecret: receivedSecret})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, "/webhooks/resend/email-received", receivedSecret, receivedPayload("re_1")))

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["id"])

	email, err := repos.EmailRepository.GetByResendID(context.Background(), "re_1")
	require.NoError(t, err)
	require.NotNil(t, email)
	assert.Equal(t, "john@example.com", email.FromAddress)
}

func TestEmailReceived_MissingHeaders(t *testing.T) {
	router, _ := setupRouter(t, &config.ResendConfig{WebhookEmailReceivedSecret: receivedSecret})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/resend/email-received", bytes.NewReader(receivedPayload("re_1")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailReceived_BadSignature(t *testing.T) {
	router, _ := setupRouter(t, &config.ResendConfig{WebhookEmailReceivedSecret: receivedSecret})

	// Signed with the wrong secret
	req := signedRequest(t, "/webhooks/resend/email-received", statusSecret, receivedPayload("re_1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmailReceived_MissingSecret(t *testing.T) {
	router, _ := setupRouter(t, &config.ResendConfig{})

	req := signedRequest(t, "/webhooks/resend/email-received", receivedSecret, receivedPayload("re_1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEmailReceived_OtherEventTypeIgnored(t *testing.T) {
	router, repos := setupRouter(t, &config.ResendConfig{WebhookEmailReceivedSecret: receivedSecret})

	payload := []byte(`{"type": "email.delivered", "data": {"email_id": "re_1"}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, "/webhooks/resend/email-received", receivedSecret, payload))

	assert.Equal(t, http.StatusOK, w.Code)

	all, err := repos.EmailRepository.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmailStatus_UnknownEmailAcknowledged(t *testing.T) {
	router, _ := setupRouter(t, &config.ResendConfig{WebhookEmailStatusSecret: statusSecret})

	payload := []byte(`{"type": "email.delivered", "data": {"email_id": "re_missing"}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, "/webhooks/resend/email-status", statusSecret, payload))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmailStatus_InvalidPayload(t *testing.T) {
	router, _ := setupRouter(t, &config.ResendConfig{WebhookEmailStatusSecret: statusSecret})

	payload := []byte(`not json`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, "/webhooks/resend/email-status", statusSecret, payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
