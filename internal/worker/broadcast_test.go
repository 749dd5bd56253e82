package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ivmish/teremok/internal/domain/model"
)

type sourceStub struct {
	subs []model.Subscriber
	err  error
}

func (s sourceStub) Subscribers(context.Context) ([]model.Subscriber, error) {
	return s.subs, s.err
}

type senderStub struct {
	mu     sync.Mutex
	sent   []int64
	failFn func(chatID int64) error
}

func (s *senderStub) SendText(ctx context.Context, chatID int64, text string) error {
	if s.failFn != nil {
		if err := s.failFn(chatID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, chatID)
	return nil
}

func (s *senderStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestBroadcastDeliversToAllSubscribers(t *testing.T) {
	source := sourceStub{subs: []model.Subscriber{{UserID: 1}, {UserID: 2}, {UserID: 3}}}
	sender := &senderStub{}
	d := NewBroadcastDispatcher(source, sender, 2, discardLogger())
	d.Start(context.Background())
	defer d.Stop()

	results := make(chan Result, 1)
	queued, err := d.Enqueue(context.Background(), "привет", func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queued != 3 {
		t.Fatalf("expected 3 queued, got %d", queued)
	}

	select {
	case res := <-results:
		if res.Sent != 3 || res.Failed != 0 {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion callback never fired")
	}
	if sender.count() != 3 {
		t.Fatalf("expected 3 deliveries, got %d", sender.count())
	}
}

func TestBroadcastFailuresDoNotHaltFanout(t *testing.T) {
	source := sourceStub{subs: []model.Subscriber{{UserID: 1}, {UserID: 2}, {UserID: 3}}}
	sender := &senderStub{failFn: func(chatID int64) error {
		if chatID == 2 {
			return errors.New("blocked by user")
		}
		return nil
	}}
	d := NewBroadcastDispatcher(source, sender, 1, discardLogger())
	d.Start(context.Background())
	defer d.Stop()

	results := make(chan Result, 1)
	if _, err := d.Enqueue(context.Background(), "привет", func(r Result) { results <- r }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case res := <-results:
		if res.Sent != 2 || res.Failed != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion callback never fired")
	}
}

func TestBroadcastEmptyAudience(t *testing.T) {
	d := NewBroadcastDispatcher(sourceStub{}, &senderStub{}, 1, discardLogger())
	d.Start(context.Background())
	defer d.Stop()

	called := false
	queued, err := d.Enqueue(context.Background(), "привет", func(Result) { called = true })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queued != 0 {
		t.Fatalf("expected 0 queued, got %d", queued)
	}
	if called {
		t.Fatal("no deliveries means no completion callback")
	}
}

func TestBroadcastSourceError(t *testing.T) {
	d := NewBroadcastDispatcher(sourceStub{err: errors.New("db down")}, &senderStub{}, 1, discardLogger())

	if _, err := d.Enqueue(context.Background(), "привет", nil); err == nil {
		t.Fatal("expected source error to propagate")
	}
}

func TestBroadcastStopWaitsForWorkers(t *testing.T) {
	source := sourceStub{subs: []model.Subscriber{{UserID: 1}, {UserID: 2}}}
	sender := &senderStub{}
	d := NewBroadcastDispatcher(source, sender, 2, discardLogger())
	d.Start(context.Background())

	if _, err := d.Enqueue(context.Background(), "привет", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitFor(t, func() bool { return sender.count() == 2 })

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
