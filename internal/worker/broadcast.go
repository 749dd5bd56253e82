package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ivmish/teremok/internal/domain/model"
)

// SubscriberSource exposes the subset of application functionality required
// by the dispatcher.
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]model.Subscriber, error)
}

// Sender delivers one text message to one chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Result aggregates delivery counts for a finished broadcast.
type Result struct {
	Sent   int
	Failed int
}

type broadcast struct {
	text      string
	sent      atomic.Int64
	failed    atomic.Int64
	remaining atomic.Int64
	notify    func(Result)
}

type job struct {
	chatID int64
	bc     *broadcast
}

// BroadcastDispatcher fans owner announcements out to subscribers through a
// bounded worker pool. Delivery is best-effort: a failure for one subscriber
// never halts the rest, and there are no retries.
type BroadcastDispatcher struct {
	source  SubscriberSource
	sender  Sender
	workers int
	logger  *slog.Logger

	jobs   chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewBroadcastDispatcher constructs the dispatcher worker pool.
func NewBroadcastDispatcher(source SubscriberSource, sender Sender, workers int, logger *slog.Logger) *BroadcastDispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &BroadcastDispatcher{
		source:  source,
		sender:  sender,
		workers: workers,
		logger:  logger,
		jobs:    make(chan job, workers*16),
	}
}

// Start launches background senders.
func (d *BroadcastDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all senders to finish.
func (d *BroadcastDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue schedules text for delivery to every current subscriber and
// returns their count. notify is invoked once, from a worker goroutine,
// after the last delivery attempt.
func (d *BroadcastDispatcher) Enqueue(ctx context.Context, text string, notify func(Result)) (int, error) {
	subscribers, err := d.source.Subscribers(ctx)
	if err != nil {
		return 0, err
	}

	if len(subscribers) == 0 {
		return 0, nil
	}

	bc := &broadcast{text: text, notify: notify}
	bc.remaining.Store(int64(len(subscribers)))

	for _, sub := range subscribers {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case d.jobs <- job{chatID: sub.UserID, bc: bc}:
		}
	}
	return len(subscribers), nil
}

func (d *BroadcastDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			d.deliver(ctx, j)
		}
	}
}

func (d *BroadcastDispatcher) deliver(ctx context.Context, j job) {
	if err := d.sender.SendText(ctx, j.chatID, j.bc.text); err != nil {
		j.bc.failed.Add(1)
		d.logger.Warn("broadcast delivery failed",
			slog.Int64("chat_id", j.chatID),
			slog.String("error", err.Error()),
		)
	} else {
		j.bc.sent.Add(1)
	}

	if j.bc.remaining.Add(-1) == 0 && j.bc.notify != nil {
		j.bc.notify(Result{
			Sent:   int(j.bc.sent.Load()),
			Failed: int(j.bc.failed.Load()),
		})
	}
}
