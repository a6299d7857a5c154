package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	er "github.com/inboxd/inboxd/internal/errors"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

// signPayload computes a valid svix v1 signature for the payload.
func signPayload(t *testing.T, secret, msgID, timestamp string, payload []byte) string {
	t.Helper()

	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	require.NoError(t, err)

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func signedHeaders(t *testing.T, secret string, payload []byte) http.Header {
	t.Helper()

	msgID := "msg_test"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	headers := http.Header{}
	headers.Set(HeaderSvixID, msgID)
	headers.Set(HeaderSvixTimestamp, timestamp)
	headers.Set(HeaderSvixSignature, signPayload(t, secret, msgID, timestamp, payload))
	return headers
}

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"type":"email.received"}`)

	err := VerifySignature(testSecret, payload, signedHeaders(t, testSecret, payload))

	assert.NoError(t, err)
}

func TestVerifySignature_MissingSecret(t *testing.T) {
	payload := []byte(`{}`)

	err := VerifySignature("", payload, signedHeaders(t, testSecret, payload))

	assert.ErrorIs(t, err, er.ErrMissingWebhookSecret)
}

func TestVerifySignature_MissingHeaders(t *testing.T) {
	payload := []byte(`{}`)
	headers := signedHeaders(t, testSecret, payload)
	headers.Del(HeaderSvixSignature)

	err := VerifySignature(testSecret, payload, headers)

	assert.ErrorIs(t, err, er.ErrMissingWebhookHeaders)
}

func TestVerifySignature_BadSignature(t *testing.T) {
	payload := []byte(`{"type":"email.received"}`)
	headers := signedHeaders(t, testSecret, payload)

	err := VerifySignature(testSecret, []byte(`{"type":"tampered"}`), headers)

	assert.ErrorIs(t, err, er.ErrInvalidSignature)
}
