package webhook

import (
	"net/http"

	"github.com/pkg/errors"
	svix "github.com/svix/svix-webhooks/go"

	er "github.com/inboxd/inboxd/internal/errors"
)

// Svix transport headers carried on every Resend webhook request.
const (
	HeaderSvixID        = "svix-id"
	HeaderSvixTimestamp = "svix-timestamp"
	HeaderSvixSignature = "svix-signature"
)

// VerifySignature authenticates a webhook request against the endpoint's
// shared secret. It distinguishes missing headers (client error) from a
// failed signature check (unauthorized); any other failure is a server-side
// configuration problem.
func VerifySignature(secret string, payload []byte, headers http.Header) error {
	if secret == "" {
		return er.ErrMissingWebhookSecret
	}

	if headers.Get(HeaderSvixID) == "" ||
		headers.Get(HeaderSvixTimestamp) == "" ||
		headers.Get(HeaderSvixSignature) == "" {
		return er.ErrMissingWebhookHeaders
	}

	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return errors.Wrap(err, "malformed webhook secret")
	}

	if err := wh.Verify(payload, headers); err != nil {
		return er.ErrInvalidSignature
	}

	return nil
}
