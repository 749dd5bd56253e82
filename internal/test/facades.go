package test

import (
	"context"
	"sync"

	"github.com/ivmish/teremok/internal/adapter/telegram"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/worker"
)

// SentMessage records one outbound text delivery.
type SentMessage struct {
	ChatID int64
	Text   string
}

// SentKeyboard records one outbound reply keyboard delivery.
type SentKeyboard struct {
	ChatID int64
	Text   string
	Rows   [][]string
}

// SentChoice records one outbound inline keyboard delivery.
type SentChoice struct {
	ChatID  int64
	Text    string
	Choices [][]telegram.Choice
}

// GatewayStub captures outbound Telegram traffic for assertions.
type GatewayStub struct {
	SendTextFn func(context.Context, int64, string) error

	mu        sync.Mutex
	Texts     []SentMessage
	Photos    []SentMessage
	Keyboards []SentKeyboard
	Choices   []SentChoice
	Answered  []string
}

// SendText records the message or delegates to the override.
func (g *GatewayStub) SendText(ctx context.Context, chatID int64, text string) error {
	g.mu.Lock()
	g.Texts = append(g.Texts, SentMessage{ChatID: chatID, Text: text})
	g.mu.Unlock()
	if g.SendTextFn != nil {
		return g.SendTextFn(ctx, chatID, text)
	}
	return nil
}

// SendPhoto records the delivery.
func (g *GatewayStub) SendPhoto(ctx context.Context, chatID int64, photo, caption string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Photos = append(g.Photos, SentMessage{ChatID: chatID, Text: photo})
	return nil
}

// SendKeyboard records the delivery.
func (g *GatewayStub) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Keyboards = append(g.Keyboards, SentKeyboard{ChatID: chatID, Text: text, Rows: rows})
	return nil
}

// SendChoice records the delivery.
func (g *GatewayStub) SendChoice(ctx context.Context, chatID int64, text string, choices [][]telegram.Choice) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Choices = append(g.Choices, SentChoice{ChatID: chatID, Text: text, Choices: choices})
	return nil
}

// AnswerCallback records the acknowledgement.
func (g *GatewayStub) AnswerCallback(ctx context.Context, callbackID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Answered = append(g.Answered, callbackID)
	return nil
}

// TextCount returns the number of recorded text deliveries.
func (g *GatewayStub) TextCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Texts)
}

var _ telegram.Gateway = (*GatewayStub)(nil)

// BroadcastCall records one Enqueue invocation.
type BroadcastCall struct {
	Text   string
	Notify func(worker.Result)
}

// BroadcasterStub captures Enqueue calls for bot and handler tests.
type BroadcasterStub struct {
	EnqueueFn func(context.Context, string, func(worker.Result)) (int, error)
	Queued    int
	Err       error

	Calls []BroadcastCall
}

// Enqueue records the call and returns configured results.
func (b *BroadcasterStub) Enqueue(ctx context.Context, text string, notify func(worker.Result)) (int, error) {
	b.Calls = append(b.Calls, BroadcastCall{Text: text, Notify: notify})
	if b.EnqueueFn != nil {
		return b.EnqueueFn(ctx, text, notify)
	}
	if b.Err != nil {
		return 0, b.Err
	}
	return b.Queued, nil
}

// SubscriberSourceStub feeds dispatcher tests.
type SubscriberSourceStub struct {
	Subs []model.Subscriber
	Err  error
}

// Subscribers returns the configured list.
func (s SubscriberSourceStub) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Subs, nil
}
