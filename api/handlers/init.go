package handlers

import (
	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/services"
)

type APIHandlers struct {
	Emails    *EmailsHandler
	Blocklist *BlocklistHandler
	Webhooks  *ResendWebhookHandler
}

func InitHandlers(s *services.Services, resendCfg *config.ResendConfig, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Emails:    NewEmailsHandler(s.EmailService, s.SpamService),
		Blocklist: NewBlocklistHandler(s.BlocklistService),
		Webhooks:  NewResendWebhookHandler(s.WebhookService, resendCfg, log),
	}
}
