package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQueueConfig describes the Redis list used as a queue.
type RedisQueueConfig struct {
	Address   string
	Password  string
	DB        int
	Queue     string
	BlockWait time.Duration
}

// RedisQueue uses LPUSH/BRPOP on a Redis list.
type RedisQueue struct {
	client *redis.Client
	queue  string
	wait   time.Duration

	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewRedisQueue connects to Redis and verifies the connection.
func NewRedisQueue(cfg RedisQueueConfig) (*RedisQueue, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return newRedisQueue(client, cfg), nil
}

func newRedisQueue(client *redis.Client, cfg RedisQueueConfig) *RedisQueue {
	queue := cfg.Queue
	if queue == "" {
		queue = "dashboard:notifications"
	}
	wait := cfg.BlockWait
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &RedisQueue{
		client:     client,
		queue:      queue,
		wait:       wait,
		minBackoff: 100 * time.Millisecond,
		maxBackoff: 5 * time.Second,
	}
}

// Publish pushes the encoded notification onto the list.
func (q *RedisQueue) Publish(ctx context.Context, n Notification) error {
	payload, err := n.Encode()
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.queue, payload).Err(); err != nil {
		return fmt.Errorf("redis publish notification: %w", err)
	}
	return nil
}

// Consume pops notifications with BRPOP. Handler failures are not re-queued:
// delivery is at-most-once. Transient Redis errors are retried with backoff;
// Consume returns once ctx is done or the client is closed, after every
// worker has stopped.
func (q *RedisQueue) Consume(ctx context.Context, workerCount int, handler Handler) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	workerCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A closed client stops the siblings too.
			defer stop()
			q.popLoop(workerCtx, handler)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (q *RedisQueue) popLoop(ctx context.Context, handler Handler) {
	backoff := q.minBackoff
	for ctx.Err() == nil {
		values, err := q.client.BRPop(ctx, q.wait, q.queue).Result()
		switch {
		case err == nil:
			backoff = q.minBackoff
		case errors.Is(err, redis.Nil):
			backoff = q.minBackoff
			continue
		case ctx.Err() != nil:
			return
		case errors.Is(err, redis.ErrClosed):
			return
		default:
			zap.L().Warn("redis pop notification failed, retrying",
				zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, q.maxBackoff)
			continue
		}
		if len(values) != 2 {
			continue
		}
		n, err := Decode([]byte(values[1]))
		if err != nil {
			zap.L().Warn("dropping malformed notification", zap.Error(err))
			continue
		}
		_ = handler(ctx, n)
	}
}

// Close closes the Redis client.
func (q *RedisQueue) Close() error {
	if q == nil || q.client == nil {
		return nil
	}
	return q.client.Close()
}
