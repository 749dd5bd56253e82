package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/usecase"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	chatID := msg.Chat.ID
	s := b.session(chatID)

	switch s.state {
	case stateMain:
		b.handleMainMenu(ctx, msg, s)
	case stateShop:
		b.handleShop(ctx, msg, s)
	case stateQuantity:
		b.handleQuantity(ctx, msg, s)
	case stateCart:
		b.handleCart(ctx, msg, s)
	case stateRooms:
		b.handleRooms(ctx, msg, s)
	case stateMeal:
		b.handleMeal(ctx, msg, s)
	case stateDish:
		b.handleDish(ctx, msg, s)
	case stateTime:
		b.handleTime(ctx, msg, s)
	case stateFeedback:
		b.handleFeedback(ctx, msg, s)
	default:
		b.sendMain(ctx, chatID, textUnknownInput)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.reply(ctx, chatID, textHelp)
	case "orders":
		b.handleOwnerOrders(ctx, msg)
	case "pending":
		b.handleOwnerPending(ctx, msg)
	case "broadcast":
		b.handleOwnerBroadcast(ctx, msg)
	default:
		b.sendMain(ctx, chatID, textUnknownInput)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	handle := userHandle(msg.From)

	b.facade.RecordActivity(ctx, chatID, handle, "start")

	if payload := strings.TrimSpace(msg.CommandArguments()); payload != "" {
		if _, err := b.facade.RecordReferral(ctx, chatID, handle, payload); err != nil {
			b.logger.Error("record referral failed",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()),
			)
		}
	}

	b.sendMain(ctx, chatID, textWelcome)
}

func (b *Bot) handleMainMenu(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID
	handle := userHandle(msg.From)

	switch msg.Text {
	case btnRooms:
		s.state = stateRooms
		b.replyKeyboard(ctx, chatID, textChooseRoom, roomsKeyboard())
	case btnAttractions:
		b.reply(ctx, chatID, textAttractions)
	case btnShop:
		s.state = stateShop
		b.replyKeyboard(ctx, chatID, textChooseItem, b.shopKeyboard())
	case btnCart:
		s.state = stateCart
		b.showCart(ctx, chatID)
	case btnMyOrders:
		b.showUserOrders(ctx, chatID)
	case btnSubscribe:
		if err := b.facade.Subscribe(ctx, chatID, handle); err != nil {
			b.reply(ctx, chatID, textSomethingBroke)
			return
		}
		b.facade.RecordActivity(ctx, chatID, handle, "subscribe")
		b.reply(ctx, chatID, textSubscribed)
	case btnUnsubscribe:
		if err := b.facade.Unsubscribe(ctx, chatID, handle); err != nil {
			b.reply(ctx, chatID, textSomethingBroke)
			return
		}
		b.facade.RecordActivity(ctx, chatID, handle, "unsubscribe")
		b.reply(ctx, chatID, textUnsubscribed)
	case btnFeedback:
		s.state = stateFeedback
		b.replyKeyboard(ctx, chatID, textAskFeedback, [][]string{{btnBack}})
	case btnHelp:
		b.reply(ctx, chatID, textHelp)
	default:
		b.sendMain(ctx, chatID, textUnknownInput)
	}
}

// --- souvenir shop ---

func (b *Bot) handleShop(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	if msg.Text == btnBack {
		b.sendMain(ctx, chatID, textWelcome)
		return
	}

	item, ok := b.facade.CatalogItem(msg.Text)
	if !ok {
		b.replyKeyboard(ctx, chatID, textUnknownInput, b.shopKeyboard())
		return
	}

	for _, photo := range item.Photos {
		if err := b.gw.SendPhoto(ctx, chatID, photo, item.Name); err != nil {
			b.logger.Warn("send photo failed", slog.String("photo", photo), slog.String("error", err.Error()))
		}
	}

	s.item = item.Name
	s.state = stateQuantity
	b.replyKeyboard(ctx, chatID,
		fmt.Sprintf("%s — %s\n%s", item.Name, FormatPrice(item.Price), textAskQuantity),
		[][]string{{btnBack}})
}

func (b *Bot) handleQuantity(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	if msg.Text == btnBack {
		s.state = stateShop
		b.replyKeyboard(ctx, chatID, textChooseItem, b.shopKeyboard())
		return
	}

	quantity, err := usecase.ParseQuantity(msg.Text)
	if err != nil {
		b.reply(ctx, chatID, textBadQuantity)
		return
	}

	line, err := b.facade.AddToCart(ctx, chatID, s.item, quantity)
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}

	s.state = stateShop
	b.replyKeyboard(ctx, chatID,
		fmt.Sprintf("✅ В корзине: %s ×%d — %s", line.Item, line.Quantity, FormatPrice(line.LineTotal())),
		b.shopKeyboard())
}

// --- cart ---

func (b *Bot) showCart(ctx context.Context, chatID int64) {
	lines, err := b.facade.CartLines(ctx, chatID)
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}
	if len(lines) == 0 {
		b.replyKeyboard(ctx, chatID, textCartEmpty, cartKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("🛒 Ваша корзина:\n")
	var total int64
	for _, line := range lines {
		fmt.Fprintf(&sb, "• %s ×%d — %s\n", line.Item, line.Quantity, FormatPrice(line.LineTotal()))
		total += line.LineTotal()
	}
	fmt.Fprintf(&sb, "Итого: %s", FormatPrice(total))
	b.replyKeyboard(ctx, chatID, sb.String(), cartKeyboard())
}

func (b *Bot) handleCart(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnCheckout:
		b.submitOrder(ctx, msg)
	case btnClearCart:
		if err := b.facade.ClearCart(ctx, chatID); err != nil {
			b.reply(ctx, chatID, textSomethingBroke)
			return
		}
		b.replyKeyboard(ctx, chatID, textCartCleared, cartKeyboard())
	case btnBack:
		b.sendMain(ctx, chatID, textWelcome)
	default:
		b.showCart(ctx, chatID)
	}
}

func (b *Bot) submitOrder(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	handle := userHandle(msg.From)

	if !b.limiter.Allow(chatID) {
		b.reply(ctx, chatID, textSubmitTooOften)
		return
	}

	pending, err := b.facade.SubmitOrder(ctx, chatID, handle)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmptyCart) {
			b.reply(ctx, chatID, textSubmitEmpty)
			return
		}
		b.logger.Error("submit order failed", slog.Int64("chat_id", chatID), slog.String("error", err.Error()))
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}

	b.facade.RecordActivity(ctx, chatID, handle, "submit_order")
	b.replyChoice(ctx, b.facade.OwnerChatID(), formatPending(pending), decisionChoices(pending.ID))
	b.sendMain(ctx, chatID, textOrderSubmitted)
}

func (b *Bot) showUserOrders(ctx context.Context, chatID int64) {
	orders, err := b.facade.UserOrders(ctx, chatID)
	if err != nil {
		b.reply(ctx, chatID, textSomethingBroke)
		return
	}
	if len(orders) == 0 {
		b.reply(ctx, chatID, textNoOrders)
		return
	}

	var sb strings.Builder
	sb.WriteString("📦 Ваши заказы:\n")
	for _, o := range orders {
		fmt.Fprintf(&sb, "№%d %s ×%d — %s, статус: %s (%s)\n",
			o.ID, o.Item, o.Quantity, FormatPrice(o.LineTotal), o.Status.Title(), o.CreatedAt.Format("02.01.2006"))
	}
	b.reply(ctx, chatID, sb.String())
}

// --- meal ordering ---

func (b *Bot) handleRooms(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnBack:
		b.sendMain(ctx, chatID, textWelcome)
	case btnRoom1, btnRoom2:
		s.room = msg.Text
		photo := "photos/room1.jpg"
		if msg.Text == btnRoom2 {
			photo = "photos/room2.jpg"
		}
		if err := b.gw.SendPhoto(ctx, chatID, photo, msg.Text); err != nil {
			b.logger.Warn("send photo failed", slog.String("photo", photo), slog.String("error", err.Error()))
		}
		s.state = stateMeal
		b.replyKeyboard(ctx, chatID, textChooseMeal, mealKeyboard())
	default:
		b.replyKeyboard(ctx, chatID, textUnknownInput, roomsKeyboard())
	}
}

func (b *Bot) handleMeal(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	if msg.Text == btnBack {
		s.state = stateRooms
		b.replyKeyboard(ctx, chatID, textChooseRoom, roomsKeyboard())
		return
	}

	dishes, ok := mealDishes[msg.Text]
	if !ok {
		b.replyKeyboard(ctx, chatID, textUnknownInput, mealKeyboard())
		return
	}

	s.meal = msg.Text
	s.state = stateDish
	b.replyKeyboard(ctx, chatID, textChooseDish, optionsKeyboard(dishes))
}

func (b *Bot) handleDish(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID

	if msg.Text == btnBack {
		s.state = stateMeal
		b.replyKeyboard(ctx, chatID, textChooseMeal, mealKeyboard())
		return
	}

	if !contains(mealDishes[s.meal], msg.Text) {
		b.replyKeyboard(ctx, chatID, textUnknownInput, optionsKeyboard(mealDishes[s.meal]))
		return
	}

	s.dish = msg.Text
	s.state = stateTime
	b.replyKeyboard(ctx, chatID, textChooseTime, optionsKeyboard(mealTimes[s.meal]))
}

func (b *Bot) handleTime(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID
	handle := userHandle(msg.From)

	if msg.Text == btnBack {
		s.state = stateDish
		b.replyKeyboard(ctx, chatID, textChooseDish, optionsKeyboard(mealDishes[s.meal]))
		return
	}

	if !contains(mealTimes[s.meal], msg.Text) {
		b.replyKeyboard(ctx, chatID, textUnknownInput, optionsKeyboard(mealTimes[s.meal]))
		return
	}

	b.facade.RecordActivity(ctx, chatID, handle, "meal_order")
	b.reply(ctx, b.facade.OwnerChatID(), fmt.Sprintf(
		"🛎 Заказ еды!\n🛏 %s\n🍽 %s\n🍲 %s\n⏰ %s\nГость: %s",
		s.room, s.meal, s.dish, msg.Text, handle))
	b.sendMain(ctx, chatID, textMealSent)
}

// --- feedback ---

func (b *Bot) handleFeedback(ctx context.Context, msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID
	handle := userHandle(msg.From)

	if msg.Text == btnBack {
		b.sendMain(ctx, chatID, textWelcome)
		return
	}

	b.facade.RecordActivity(ctx, chatID, handle, "feedback")
	b.reply(ctx, b.facade.OwnerChatID(), fmt.Sprintf("💬 Отзыв от %s (id %d):\n%s", handle, chatID, msg.Text))
	b.sendMain(ctx, chatID, textFeedbackThanks)
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
