package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/orderdesk/internal/adapter/chat"
)

// Target selects where a notification is delivered.
type Target int

const (
	TargetChannel Target = iota
	TargetUser
)

func (t Target) String() string {
	if t == TargetUser {
		return "user"
	}
	return "channel"
}

// Notification is a rendered message waiting for delivery.
type Notification struct {
	Target      Target
	RecipientID string
	OrderID     string
	Message     chat.Message
}

// Options tunes the dispatcher pool.
type Options struct {
	Workers      int
	QueueSize    int
	SendTimeout  time.Duration
	MaxRetryWait time.Duration
}

// Dispatcher delivers notifications in the background. Delivery is best effort:
// failures are logged and never reported back to the caller that enqueued them.
type Dispatcher struct {
	sender  chat.Sender
	logger  *slog.Logger
	workers int
	timeout time.Duration
	maxWait time.Duration

	jobs    chan Notification
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher constructs notification worker pool.
func NewDispatcher(sender chat.Sender, opts Options, logger *slog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if opts.MaxRetryWait <= 0 {
		opts.MaxRetryWait = 5 * time.Second
	}
	return &Dispatcher{
		sender:  sender,
		logger:  logger,
		workers: opts.Workers,
		timeout: opts.SendTimeout,
		maxWait: opts.MaxRetryWait,
		jobs:    make(chan Notification, opts.QueueSize),
	}
}

// Notify enqueues n without blocking. It reports false when the queue is full
// or the dispatcher has been stopped.
func (d *Dispatcher) Notify(n Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dropped, dispatcher stopped",
			slog.String("target", n.Target.String()),
			slog.String("order_id", n.OrderID),
		)
		return false
	}

	select {
	case d.jobs <- n:
		return true
	default:
		d.logger.Warn("notification dropped, queue full",
			slog.String("target", n.Target.String()),
			slog.String("recipient_id", n.RecipientID),
			slog.String("order_id", n.OrderID),
		)
		return false
	}
}

// Start launches background delivery.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop closes the queue and waits for queued notifications to be delivered.
// When ctx expires first, in-flight deliveries are aborted.
func (d *Dispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("notification drain interrupted", slog.Int("pending", len(d.jobs)))
		cancel()
		<-done
	}
	cancel()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for n := range d.jobs {
		if ctx.Err() != nil {
			continue
		}
		d.deliver(ctx, n)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	err := d.send(ctx, n)

	var limited chat.RateLimitedError
	if errors.As(err, &limited) {
		wait := min(limited.RetryAfter, d.maxWait)
		d.logger.Warn("chat rate limited, retrying once", slog.Duration("retry_after", wait))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = ctx.Err()
		case <-timer.C:
			err = d.send(ctx, n)
		}
	}

	if err != nil {
		d.logger.Warn("notification failed",
			slog.String("target", n.Target.String()),
			slog.String("recipient_id", n.RecipientID),
			slog.String("order_id", n.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Debug("notification delivered",
		slog.String("target", n.Target.String()),
		slog.String("recipient_id", n.RecipientID),
		slog.String("order_id", n.OrderID),
	)
}

func (d *Dispatcher) send(ctx context.Context, n Notification) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if n.Target == TargetUser {
		return d.sender.SendDirectMessage(sendCtx, n.RecipientID, n.Message)
	}
	return d.sender.SendChannelMessage(sendCtx, n.RecipientID, n.Message)
}
