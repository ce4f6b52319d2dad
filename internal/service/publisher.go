// Package service provides outbound integrations used by the handlers.
// Currently that is the RabbitMQ publisher for supply status events.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	q "github.com/iliyamo/agri-supply-ledger/internal/queue"
)

// EventPublisher publishes supply status events.  Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	PublishSupplyStatusChanged(ctx context.Context, event q.SupplyStatusChangedEvent) error
}

// NoopPublisher drops every event.  It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSupplyStatusChanged(context.Context, q.SupplyStatusChangedEvent) error {
	return nil
}

// AMQPPublisher opens a connection and channel per publish.
type AMQPPublisher struct {
	url         string
	dialTimeout time.Duration
	log         logging.Logger
}

func NewAMQPPublisher(url string, log logging.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, dialTimeout: 3 * time.Second, log: log}
}

// NewPublisher picks the AMQP publisher when url is set and the no-op
// publisher otherwise.
func NewPublisher(url string, log logging.Logger) EventPublisher {
	if url == "" {
		return NoopPublisher{}
	}
	return NewAMQPPublisher(url, log)
}

// PublishSupplyStatusChanged sends event to the durable supply status
// queue as a persistent JSON message.  Errors are logged and returned so
// the caller can choose to ignore them.
func (p *AMQPPublisher) PublishSupplyStatusChanged(ctx context.Context, event q.SupplyStatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error(ctx, "rabbitmq: marshal event failed", "err", err)
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		p.log.Warn(ctx, "rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn(ctx, "rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.SupplyStatusQueue, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		p.log.Warn(ctx, "rabbitmq: queue declare failed", "err", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                  // default exchange
		q.SupplyStatusQueue, // routing key = queue name
		false,               // mandatory
		false,               // immediate
		pub,
	); err != nil {
		p.log.Warn(ctx, "rabbitmq: publish failed", "err", err)
		return err
	}

	p.log.Debug(ctx, "rabbitmq: published supply status event", "id_produk", event.SupplyID, "status", event.Status)
	return nil
}
