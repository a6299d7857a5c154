package events

import (
	"context"
	"fmt"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/internal/logger"
)

// EventsService is the fan-out side of the pipeline. A nil service (no broker
// configured) is valid and drops events silently.
type EventsService struct {
	Publisher *RabbitMQPublisher
}

func NewEventsService(rabbitmqURL string, log logger.Logger, publisherConfig *PublisherConfig) (*EventsService, error) {
	publisher, err := NewRabbitMQPublisher(rabbitmqURL, log, publisherConfig)
	if err != nil {
		return nil, err
	}

	return &EventsService{
		Publisher: publisher,
	}, nil
}

func (s *EventsService) PublishMailEvent(ctx context.Context, event dto.MailEvent) error {
	if s == nil || s.Publisher == nil {
		return nil
	}
	return s.Publisher.PublishMailEvent(ctx, event)
}

func (s *EventsService) Close() error {
	if s == nil {
		return nil
	}

	var errs []error

	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing events service: %v", errs)
	}

	return nil
}
