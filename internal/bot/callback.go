package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
)

// Inline button actions. Data stays short: Telegram limits callback
// payloads to 64 bytes.
const (
	actionApprove = "approve"
	actionDecline = "decline"
	actionDelete  = "del"
	actionStatus  = "status"
)

func callbackData(action string, id int64) string {
	return fmt.Sprintf("%s:%d", action, id)
}

func statusCallbackData(orderID int64, status string) string {
	return fmt.Sprintf("%s:%d:%s", actionStatus, orderID, status)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	if err := b.gw.AnswerCallback(ctx, cb.ID); err != nil {
		b.logger.Warn("answer callback failed", slog.String("error", err.Error()))
	}

	if !b.facade.IsOwner(chatID) {
		b.reply(ctx, chatID, textOwnerOnly)
		return
	}

	action, id, arg, err := parseCallback(cb.Data)
	if err != nil {
		b.logger.Warn("malformed callback", slog.String("data", cb.Data))
		return
	}

	switch action {
	case actionApprove:
		b.approvePending(ctx, chatID, id)
	case actionDecline:
		b.declinePending(ctx, chatID, id)
	case actionStatus:
		b.setOrderStatus(ctx, chatID, id, model.OrderStatus(arg))
	case actionDelete:
		b.deleteOrder(ctx, chatID, id)
	default:
		b.logger.Warn("unknown callback action", slog.String("data", cb.Data))
	}
}

func parseCallback(data string) (action string, id int64, arg string, err error) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", 0, "", fmt.Errorf("malformed callback data %q", data)
	}
	id, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("malformed callback data %q", data)
	}
	if len(parts) == 3 {
		arg = parts[2]
	}
	return parts[0], id, arg, nil
}

func (b *Bot) approvePending(ctx context.Context, chatID, pendingID int64) {
	orders, err := b.facade.ApproveOrder(ctx, pendingID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			b.reply(ctx, chatID, textPendingGone)
			return
		}
		b.logger.Error("approve failed", slog.Int64("pending_id", pendingID), slog.String("error", err.Error()))
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Заказ №%d подтверждён. Позиции в работе:\n", pendingID)
	for _, o := range orders {
		fmt.Fprintf(&sb, "• №%d %s ×%d\n", o.ID, o.Item, o.Quantity)
	}
	b.reply(ctx, chatID, sb.String())
}

func (b *Bot) declinePending(ctx context.Context, chatID, pendingID int64) {
	pending, err := b.facade.DeclineOrder(ctx, pendingID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			b.reply(ctx, chatID, textPendingGone)
			return
		}
		b.logger.Error("decline failed", slog.Int64("pending_id", pendingID), slog.String("error", err.Error()))
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}

	b.reply(ctx, chatID, fmt.Sprintf("❌ Заказ №%d от %s отклонён.", pending.ID, pending.Handle))
}

func (b *Bot) setOrderStatus(ctx context.Context, chatID, orderID int64, status model.OrderStatus) {
	order, err := b.facade.SetOrderStatus(ctx, orderID, status)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			b.reply(ctx, chatID, textOrderGone)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			b.reply(ctx, chatID, textStatusForbidden)
		default:
			b.logger.Error("status change failed", slog.Int64("order_id", orderID), slog.String("error", err.Error()))
			b.reply(ctx, chatID, textSomethingBroke)
		}
		return
	}

	b.reply(ctx, chatID, fmt.Sprintf("Заказ №%d: %s.", order.ID, order.Status.Title()))
}

func (b *Bot) deleteOrder(ctx context.Context, chatID, orderID int64) {
	order, err := b.facade.DeleteOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			b.reply(ctx, chatID, textOrderGone)
			return
		}
		b.logger.Error("delete failed", slog.Int64("order_id", orderID), slog.String("error", err.Error()))
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}

	b.reply(ctx, chatID, fmt.Sprintf("🗑 Заказ №%d (%s ×%d) удалён из списка.", order.ID, order.Item, order.Quantity))
}
