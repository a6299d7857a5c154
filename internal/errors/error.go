package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// email errors
	ErrEmailNotFound = errors.New("email not found")

	// webhook errors
	ErrMissingWebhookSecret  = errors.New("webhook secret not configured")
	ErrMissingWebhookHeaders = errors.New("missing webhook signature headers")
	ErrInvalidSignature      = errors.New("invalid webhook signature")
)
