package events

import "time"

type Config struct {
	// URI: The RabbitMQ connection URI, including credentials if necessary.
	URI string
	// Queue: The name of the queue session events are published to.
	Queue string
	// Durable: Indicates whether the queue survives a broker restart.
	Durable bool
	// DeadLetterEnabled: When set, rejected events are routed to a
	// companion queue named Queue+DeadLetterSuffix.
	DeadLetterEnabled bool
	// DeadLetterSuffix: Defaults to ".dlq" when dead-lettering is enabled.
	DeadLetterSuffix string
	// TTL: Per-message time-to-live on the queue. Zero means no limit.
	TTL time.Duration
}

func (c *Config) deadLetterQueue() string {
	suffix := c.DeadLetterSuffix
	if suffix == "" {
		suffix = ".dlq"
	}
	return c.Queue + suffix
}
