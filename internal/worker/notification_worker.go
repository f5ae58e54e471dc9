package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/userstore/internal/events"
)

// NotificationWorker moves event delivery off the request path. Publish enqueues; Run drains the
// queue into the wrapped dispatcher until the context ends.
type NotificationWorker struct {
	next   events.Dispatcher
	queue  chan queued
	logger *zap.Logger
	wg     sync.WaitGroup
}

type queued struct {
	ctx   context.Context
	event events.Event
}

// NewNotificationWorker wraps next with a buffered queue of the given size.
func NewNotificationWorker(next events.Dispatcher, size int, logger *zap.Logger) *NotificationWorker {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		next:   next,
		queue:  make(chan queued, size),
		logger: logger,
	}
}

// Publish enqueues the event. When the queue is full it is delivered inline rather than dropped.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	detached := context.WithoutCancel(ctx)
	select {
	case w.queue <- queued{ctx: detached, event: event}:
		return nil
	default:
		w.logger.Warn("notification queue full, delivering inline", zap.String("event_type", string(event.Type)))
		return w.next.Publish(detached, event)
	}
}

// Subscribe registers on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.next.Subscribe(eventType, handler)
}

// Start runs the worker in its own goroutine. Wait returns once that goroutine has flushed.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run(ctx)
	}()
}

// Run delivers queued events until ctx is done, then flushes whatever is still buffered.
func (w *NotificationWorker) Run(ctx context.Context) {
	for {
		select {
		case item := <-w.queue:
			w.deliver(item)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// Wait blocks until every goroutine launched by Start has returned.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case item := <-w.queue:
			w.deliver(item)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(item queued) {
	if err := w.next.Publish(item.ctx, item.event); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("event_id", item.event.ID),
			zap.String("event_type", string(item.event.Type)),
			zap.Error(err))
	}
}
