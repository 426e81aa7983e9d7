package notifications

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned when publishing to a closed queue.
var ErrQueueClosed = errors.New("notification queue is closed")

// MemoryQueue is a buffered channel queue for single-process deployments and tests.
type MemoryQueue struct {
	ch     chan Notification
	mu     sync.RWMutex
	closed bool
}

// NewMemoryQueue creates an in-memory queue.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 256
	}
	return &MemoryQueue{ch: make(chan Notification, size)}
}

// Publish enqueues the notification, waiting while the buffer is full.
func (q *MemoryQueue) Publish(ctx context.Context, n Notification) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.ch <- n:
		return nil
	}
}

// Consume runs workerCount goroutines until ctx is cancelled or the queue is closed.
func (q *MemoryQueue) Consume(ctx context.Context, workerCount int, handler Handler) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case n, ok := <-q.ch:
					if !ok {
						return
					}
					_ = handler(ctx, n)
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}

// Close stops accepting notifications. A running Consume keeps delivering
// what is already buffered and returns once the buffer is empty, unless its
// context is cancelled first.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		close(q.ch)
		q.closed = true
	}
	return nil
}
