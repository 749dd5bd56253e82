package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivmish/teremok/internal/worker"
)

func (b *Bot) handleOwnerOrders(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.facade.IsOwner(chatID) {
		b.reply(ctx, chatID, textOwnerOnly)
		return
	}

	includeDelivered := strings.TrimSpace(msg.CommandArguments()) == "all"
	orders, err := b.facade.RecentOrders(ctx, includeDelivered)
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}
	if len(orders) == 0 {
		b.reply(ctx, chatID, textNoRecentOrders)
		return
	}

	for _, o := range orders {
		b.replyChoice(ctx, chatID, formatOrder(o), statusChoices(o.ID))
	}
}

func (b *Bot) handleOwnerPending(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.facade.IsOwner(chatID) {
		b.reply(ctx, chatID, textOwnerOnly)
		return
	}

	pendings, err := b.facade.PendingOrders(ctx)
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}
	if len(pendings) == 0 {
		b.reply(ctx, chatID, textNoPending)
		return
	}

	for _, p := range pendings {
		b.replyChoice(ctx, chatID, formatPending(&p), decisionChoices(p.ID))
	}
}

func (b *Bot) handleOwnerBroadcast(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.facade.IsOwner(chatID) {
		b.reply(ctx, chatID, textOwnerOnly)
		return
	}

	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.reply(ctx, chatID, textBroadcastUsage)
		return
	}

	if len(text) > maxBroadcastLen {
		b.reply(ctx, chatID, textBroadcastUsage)
		return
	}

	queued, err := b.broadcaster.Enqueue(ctx, text, func(res worker.Result) {
		report := fmt.Sprintf("📣 Рассылка завершена: доставлено %d, не доставлено %d.", res.Sent, res.Failed)
		if err := b.gw.SendText(context.Background(), chatID, report); err != nil {
			b.logger.Warn("broadcast report failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}
	if queued == 0 {
		b.reply(ctx, chatID, textBroadcastEmpty)
		return
	}

	b.reply(ctx, chatID, fmt.Sprintf("📣 Рассылка отправляется %d подписчикам.", queued))
}

// Telegram caps message bodies at 4096 characters.
const maxBroadcastLen = 4096
