package services

import (
	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/services/blocklist"
	"github.com/inboxd/inboxd/services/email"
	"github.com/inboxd/inboxd/services/events"
	"github.com/inboxd/inboxd/services/resend"
	"github.com/inboxd/inboxd/services/spam"
	"github.com/inboxd/inboxd/services/webhook"
)

type Services struct {
	EventsService    *events.EventsService
	BlocklistService interfaces.BlocklistService
	SpamService      interfaces.SpamService
	WebhookService   interfaces.WebhookService
	EmailService     interfaces.EmailService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	// events (optional; without a broker events are dropped)
	var eventsService *events.EventsService
	if cfg.AppConfig.RabbitMQURL != "" {
		publisherConfig := &events.PublisherConfig{
			MessageTTL:          events.DefaultMessageTTL,
			PublishTimeout:      events.DefaultPublishTimeout,
			ReconnectBackoff:    events.DefaultReconnectBackoff,
			MaxReconnectBackoff: events.DefaultMaxReconnectBackoff,
		}

		es, err := events.NewEventsService(cfg.AppConfig.RabbitMQURL, log, publisherConfig)
		if err != nil {
			return nil, err
		}
		eventsService = es
	}

	blocklistService := blocklist.NewBlocklistService(repos)
	spamService := spam.NewSpamService(repos, blocklistService)
	providerClient := resend.NewResendClient(cfg.ResendConfig)

	services := Services{
		EventsService:    eventsService,
		BlocklistService: blocklistService,
		SpamService:      spamService,
		WebhookService:   webhook.NewWebhookService(repos, spamService, eventsService, log),
		EmailService:     email.NewEmailService(repos, providerClient),
	}

	return &services, nil
}
