package events

import (
	"context"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQP publishes session events to a RabbitMQ queue. It declares the queue
// (and its dead-letter companion when enabled) at connect time.
type AMQP struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	config Config
}

func NewAMQP(config Config) (*AMQP, error) {
	// Establish a connection to the AMQP server
	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, err
	}

	// Open a new channel over the connection
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	args := amqp.Table{}
	if config.TTL > 0 {
		args["x-message-ttl"] = config.TTL.Milliseconds()
	}
	if config.DeadLetterEnabled {
		if _, err = ch.QueueDeclare(config.deadLetterQueue(), config.Durable, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, err
		}
		args["x-dead-letter-exchange"] = ""
		args["x-dead-letter-routing-key"] = config.deadLetterQueue()
	}

	if _, err = ch.QueueDeclare(config.Queue, config.Durable, false, false, false, args); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &AMQP{conn, ch, config}, nil
}

// Publish encodes the event as JSON and publishes it to the queue.
func (a *AMQP) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	return a.ch.PublishWithContext(
		ctx,            // context
		"",             // exchange
		a.config.Queue, // routing key
		false,          // mandatory
		false,          // immediate
		message,
	)
}

// Close closes the publisher, releasing the channel and connection.
func (a *AMQP) Close() error {
	_ = a.ch.Close()
	return a.conn.Close()
}
