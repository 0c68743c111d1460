package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// JSONPublisher is the publishing side used by services that enqueue jobs.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type rabbitQueue struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

// dialQueue connects and declares a durable queue shared by publisher and consumer.
func dialQueue(url, queue string) (*rabbitQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return &rabbitQueue{conn: conn, ch: ch, Queue: queue}, nil
}

func (q *rabbitQueue) Close() error {
	if q == nil {
		return nil
	}
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// RabbitPublisher wraps an AMQP channel and queue for publishing messages.
type RabbitPublisher struct {
	*rabbitQueue
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	q, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{rabbitQueue: q}, nil
}

// PublishJSON publishes a JSON-encoded, persistent message to the queue.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}

// RabbitConsumer delivers messages from a durable queue with manual acks.
type RabbitConsumer struct {
	*rabbitQueue
	deliveries <-chan amqp.Delivery
}

func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	q, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := q.ch.Qos(prefetch, 0, false); err != nil {
		_ = q.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}
	msgs, err := q.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		_ = q.Close()
		return nil, fmt.Errorf("consume: %w", err)
	}
	return &RabbitConsumer{rabbitQueue: q, deliveries: msgs}, nil
}

func (c *RabbitConsumer) Deliveries() <-chan amqp.Delivery { return c.deliveries }
