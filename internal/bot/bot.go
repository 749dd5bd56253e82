package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivmish/teremok/internal/adapter/telegram"
	"github.com/ivmish/teremok/internal/pkg/ratelimit"
	"github.com/ivmish/teremok/internal/worker"
)

// Poller produces inbound updates via long polling.
type Poller interface {
	Updates(timeout time.Duration) tgbotapi.UpdatesChannel
	StopPolling()
}

// Broadcaster schedules owner announcements for fan-out.
type Broadcaster interface {
	Enqueue(ctx context.Context, text string, notify func(worker.Result)) (int, error)
}

// Options control the update delivery mode.
type Options struct {
	PollTimeout time.Duration
	Polling     bool
}

// Bot routes Telegram updates to the application facade. Navigation state
// is kept per chat in memory; everything that must survive a restart goes
// through the facade to the store.
type Bot struct {
	facade      Facade
	gw          telegram.Gateway
	poller      Poller
	broadcaster Broadcaster
	limiter     *ratelimit.Limiter
	opts        Options
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*session
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New constructs the update router.
func New(facade Facade, gw telegram.Gateway, poller Poller, broadcaster Broadcaster, limiter *ratelimit.Limiter, opts Options, logger *slog.Logger) *Bot {
	return &Bot{
		facade:      facade,
		gw:          gw,
		poller:      poller,
		broadcaster: broadcaster,
		limiter:     limiter,
		opts:        opts,
		logger:      logger,
		sessions:    make(map[int64]*session),
	}
}

// Start launches the polling loop when polling mode is enabled. In webhook
// mode updates arrive through HandleUpdate instead.
func (b *Bot) Start(ctx context.Context) {
	if !b.opts.Polling {
		return
	}

	b.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	updates := b.poller.Updates(b.opts.PollTimeout)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.HandleUpdate(runCtx, update)
			}
		}
	}()
}

// Stop terminates the polling loop and waits for in-flight updates.
func (b *Bot) Stop() {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.mu.Unlock()

	if b.opts.Polling {
		b.poller.StopPolling()
	}
	b.wg.Wait()
}

// HandleUpdate processes one inbound update. A failed update never takes
// the service down: panics are recovered and logged.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("update handler panicked", slog.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{state: stateMain}
		b.sessions[chatID] = s
	}
	return s
}

func userHandle(from *tgbotapi.User) string {
	if from == nil {
		return "—"
	}
	if from.UserName != "" {
		return "@" + from.UserName
	}
	handle := from.FirstName
	if from.LastName != "" {
		handle += " " + from.LastName
	}
	if handle == "" {
		return "—"
	}
	return handle
}

// reply wraps gateway sends: delivery problems are logged, never fatal.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.gw.SendText(ctx, chatID, text); err != nil {
		b.logger.Warn("reply failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func (b *Bot) replyKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) {
	if err := b.gw.SendKeyboard(ctx, chatID, text, rows); err != nil {
		b.logger.Warn("reply failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func (b *Bot) replyChoice(ctx context.Context, chatID int64, text string, choices [][]telegram.Choice) {
	if err := b.gw.SendChoice(ctx, chatID, text, choices); err != nil {
		b.logger.Warn("reply failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
	}
}

func (b *Bot) sendMain(ctx context.Context, chatID int64, text string) {
	b.session(chatID).state = stateMain
	b.replyKeyboard(ctx, chatID, text, mainKeyboard())
}
