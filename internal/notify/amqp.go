package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPTransport publishes messages to a durable queue consumed by the
// external push gateway.
type AMQPTransport struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

type amqpEnvelope struct {
	Kind      Kind              `json:"kind"`
	Recipient string            `json:"recipient"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	SentAt    time.Time         `json:"sentAt"`
}

func NewAMQPTransport(url, queueName string) (*AMQPTransport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	return &AMQPTransport{conn: conn, channel: ch, queue: q}, nil
}

func (t *AMQPTransport) Name() string { return "amqp" }

func (t *AMQPTransport) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(amqpEnvelope{
		Kind:      msg.Kind,
		Recipient: msg.RecipientExternalID,
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      msg.Data,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return t.channel.PublishWithContext(ctx,
		"",           // default exchange
		t.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (t *AMQPTransport) Close() error {
	if t == nil {
		return nil
	}
	if t.channel != nil {
		_ = t.channel.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
