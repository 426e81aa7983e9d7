package notifications

import (
	"context"
	"fmt"
	"strings"
)

// Handler processes a notification taken off the queue.
type Handler func(ctx context.Context, n Notification) error

// Producer publishes notifications.
type Producer interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// Consumer delivers queued notifications to a handler.
type Consumer interface {
	Consume(ctx context.Context, workerCount int, handler Handler) error
	Close() error
}

// Queue is both producer and consumer.
type Queue interface {
	Producer
	Consumer
}

// QueueConfig selects and configures a queue backend.
type QueueConfig struct {
	Backend  string
	Redis    RedisQueueConfig
	RabbitMQ RabbitMQConfig
	// MemorySize is the channel buffer of the in-memory queue.
	MemorySize int
}

// NewQueue builds the queue named by cfg.Backend: memory, redis or rabbitmq.
func NewQueue(cfg QueueConfig) (Queue, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryQueue(cfg.MemorySize), nil
	case "redis":
		return NewRedisQueue(cfg.Redis)
	case "rabbitmq", "amqp":
		return NewRabbitMQQueue(cfg.RabbitMQ)
	default:
		return nil, fmt.Errorf("unsupported notification queue %q", cfg.Backend)
	}
}
