package notifications

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher hands notifications to a queue without making the caller wait.
type Dispatcher struct {
	producer Producer
	logger   *zap.Logger
	inflight sync.WaitGroup
}

func NewDispatcher(producer Producer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{producer: producer, logger: logger}
}

// Notify publishes n on its own goroutine. Publish failures are logged and
// never reach the caller.
func (d *Dispatcher) Notify(n Notification) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		if err := d.producer.Publish(context.Background(), n); err != nil {
			d.logger.Warn("failed to enqueue notification",
				zap.String("id", n.ID),
				zap.String("kind", string(n.Kind)),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every publish started by Notify has finished. It is used
// during shutdown before the queue is closed.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// Worker drains a queue and delivers each notification through a Mailer.
type Worker struct {
	consumer Consumer
	mailer   Mailer
	workers  int
	logger   *zap.Logger
}

func NewWorker(consumer Consumer, mailer Mailer, workers int, logger *zap.Logger) *Worker {
	return &Worker{consumer: consumer, mailer: mailer, workers: workers, logger: logger}
}

// Run blocks until ctx is cancelled or the queue is closed.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.workers, w.deliver)
}

// deliver swallows mailer errors: delivery is best-effort.
func (w *Worker) deliver(ctx context.Context, n Notification) error {
	if err := w.mailer.Send(ctx, n); err != nil {
		w.logger.Error("failed to deliver notification",
			zap.String("id", n.ID),
			zap.String("kind", string(n.Kind)),
			zap.String("to", n.RecipientEmail),
			zap.Error(err),
		)
		return nil
	}
	w.logger.Debug("notification delivered", zap.String("id", n.ID), zap.String("kind", string(n.Kind)))
	return nil
}
