package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"jamqueuepro/internal/domain"
)

// ActivityPublisher mirrors audit log entries to a RabbitMQ queue for
// downstream analytics consumers. Messages are persistent JSON.
type ActivityPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

var _ domain.ActivityPublisher = (*ActivityPublisher)(nil)

// NewActivityPublisher dials the broker and declares the durable queue.
func NewActivityPublisher(url, queue string) (*ActivityPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return &ActivityPublisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *ActivityPublisher) Publish(ctx context.Context, entry *domain.ActivityEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal activity entry: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         entry.Action,
		Body:         body,
	}
	if err := p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *ActivityPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
