package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/tracing"
)

const (
	// Exchange names
	ExchangeMailEvents = "inboxd-mail-events"
	ExchangeDeadLetter = "dead-letter"

	// queues
	QueueMailEvents = "mail-events"
	DLQMailEvents   = QueueMailEvents + "-dlq"

	// routing keys
	RoutingKeyDeadLetter = "dead-letter"

	// Default configurations
	DefaultMessageTTL          = 240 * time.Hour // after TTL message moves to DLQ
	DefaultPublishTimeout      = 5 * time.Second
	DefaultReconnectBackoff    = time.Second
	DefaultMaxReconnectBackoff = 30 * time.Second
)

type PublisherConfig struct {
	MessageTTL          time.Duration
	PublishTimeout      time.Duration
	ReconnectBackoff    time.Duration
	MaxReconnectBackoff time.Duration
}

type RabbitMQPublisher struct {
	connection      *amqp091.Connection
	connectionMutex sync.Mutex
	publishChannel  *amqp091.Channel
	publishMutex    sync.Mutex
	url             string
	logger          logger.Logger
	confirms        chan amqp091.Confirmation
	config          PublisherConfig
}

func NewRabbitMQPublisher(rabbitmqURL string, logger logger.Logger, config *PublisherConfig) (*RabbitMQPublisher, error) {
	if config == nil {
		config = &PublisherConfig{
			MessageTTL:          DefaultMessageTTL,
			PublishTimeout:      DefaultPublishTimeout,
			ReconnectBackoff:    DefaultReconnectBackoff,
			MaxReconnectBackoff: DefaultMaxReconnectBackoff,
		}
	}

	publisher := &RabbitMQPublisher{
		url:    rabbitmqURL,
		logger: logger,
		config: *config,
	}

	err := publisher.connect()
	if err != nil {
		return nil, err
	}

	return publisher, nil
}

// PublishMailEvent fans out a mail event to downstream consumers. Publishing
// is best-effort: ingestion has already committed when this runs.
func (r *RabbitMQPublisher) PublishMailEvent(ctx context.Context, event dto.MailEvent) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RabbitMQPublisher.PublishMailEvent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, event.EmailID)
	span.LogKV("eventType", event.Type)

	if err := r.ensureConnectionAndChannel(); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "Failed to marshal mail event")
	}

	publishCtx, cancel := context.WithTimeout(ctx, r.config.PublishTimeout)
	defer cancel()

	r.publishMutex.Lock()
	defer r.publishMutex.Unlock()

	err = r.publishChannel.PublishWithContext(
		publishCtx,
		ExchangeMailEvents,
		"", // fanout ignores routing key
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "Failed to publish mail event")
	}

	select {
	case confirm := <-r.confirms:
		if !confirm.Ack {
			err := errors.New("mail event publish not acknowledged by broker")
			tracing.TraceErr(span, err)
			return err
		}
	case <-publishCtx.Done():
		err := errors.New("timed out waiting for publish confirmation")
		tracing.TraceErr(span, err)
		return err
	}

	span.LogKV("result.published", true)
	return nil
}

func (r *RabbitMQPublisher) setupPublishChannel() error {
	channel, err := r.connection.Channel()
	if err != nil {
		return errors.Wrap(err, "Failed to open publish channel")
	}

	// Enable publisher confirms
	err = channel.Confirm(false)
	if err != nil {
		channel.Close()
		return errors.Wrap(err, "Failed to enable publisher confirms")
	}

	r.confirms = channel.NotifyPublish(make(chan amqp091.Confirmation, 1))
	r.publishChannel = channel
	return nil
}

func (r *RabbitMQPublisher) handleReconnection() {
	backoff := r.config.ReconnectBackoff

	for {
		notifyClose := r.connection.NotifyClose(make(chan *amqp091.Error))
		err := <-notifyClose
		r.logger.Warnf("RabbitMQ connection closed: %v, attempting to reconnect", err)

		for {
			err := r.connect()
			if err == nil {
				r.logger.Info("Successfully reconnected to RabbitMQ")
				break
			}

			r.logger.Errorf("Failed to reconnect: %v, retrying in %v", err, backoff)
			time.Sleep(backoff)

			// Exponential backoff with max limit
			backoff *= 2
			if backoff > r.config.MaxReconnectBackoff {
				backoff = r.config.MaxReconnectBackoff
			}
		}

		// Reset backoff after successful reconnection
		backoff = r.config.ReconnectBackoff
	}
}

func (r *RabbitMQPublisher) setupExchangesAndQueues() error {
	channel, err := r.connection.Channel()
	if err != nil {
		return errors.Wrap(err, "Failed to open channel for exchange/queue setup")
	}
	defer channel.Close()

	// Dead Letter Exchange (direct)
	err = channel.ExchangeDeclare(
		ExchangeDeadLetter,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return errors.Wrap(err, "Failed to declare dead letter exchange")
	}

	// Mail events exchange (fanout)
	err = channel.ExchangeDeclare(
		ExchangeMailEvents,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Failed to declare mail events exchange")
	}

	err = r.declareQueueWithDLQ(channel, QueueMailEvents, DLQMailEvents)
	if err != nil {
		return err
	}
	err = channel.QueueBind(
		QueueMailEvents,
		"",
		ExchangeMailEvents,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "Failed to bind queue %s to exchange %s", QueueMailEvents, ExchangeMailEvents)
	}

	return nil
}

func (r *RabbitMQPublisher) declareQueueWithDLQ(channel *amqp091.Channel, queueName string, dlqName string) error {
	// First declare the DLQ
	_, err := channel.QueueDeclare(
		dlqName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "Failed to declare DLQ %s", dlqName)
	}

	// Bind DLQ to dead letter exchange
	err = channel.QueueBind(
		dlqName,
		RoutingKeyDeadLetter,
		ExchangeDeadLetter,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "Failed to bind DLQ %s to exchange", dlqName)
	}

	// Declare main queue with DLQ configuration
	args := make(map[string]interface{})
	args["x-dead-letter-exchange"] = ExchangeDeadLetter
	args["x-dead-letter-routing-key"] = RoutingKeyDeadLetter
	args["x-message-ttl"] = int64(r.config.MessageTTL.Milliseconds())

	_, err = channel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		args,
	)
	if err != nil {
		return errors.Wrapf(err, "Failed to declare queue %s", queueName)
	}

	return nil
}

func (r *RabbitMQPublisher) connect() error {
	r.connectionMutex.Lock()
	defer r.connectionMutex.Unlock()

	var err error
	r.connection, err = amqp091.Dial(r.url)
	if err != nil {
		return errors.Wrap(err, "Failed to connect to RabbitMQ")
	}

	err = r.setupExchangesAndQueues()
	if err != nil {
		return errors.Wrap(err, "Failed to setup exchanges and queues")
	}

	err = r.setupPublishChannel()
	if err != nil {
		return errors.Wrap(err, "Failed to setup publish channel")
	}

	go r.handleReconnection()

	return nil
}

func (r *RabbitMQPublisher) ensureConnectionAndChannel() error {
	if r.connection == nil || r.connection.IsClosed() {
		if err := r.connect(); err != nil {
			return errors.Wrap(err, "Failed to establish connection")
		}
	}

	if r.publishChannel == nil || r.publishChannel.IsClosed() {
		if err := r.setupPublishChannel(); err != nil {
			return errors.Wrap(err, "Failed to establish channel")
		}
	}

	return nil
}

func (r *RabbitMQPublisher) Close() error {
	r.connectionMutex.Lock()
	defer r.connectionMutex.Unlock()

	if r.publishChannel != nil && !r.publishChannel.IsClosed() {
		if err := r.publishChannel.Close(); err != nil {
			return err
		}
	}

	if r.connection != nil && !r.connection.IsClosed() {
		return r.connection.Close()
	}

	return nil
}
