package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Choice is one inline button: a visible label plus callback payload.
type Choice struct {
	Label string
	Data  string
}

// Gateway delivers messages to Telegram chats. The core treats delivery as
// a capability: failures are reported, never retried here.
type Gateway interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo, caption string) error
	// SendKeyboard sends text with a reply keyboard built from button rows.
	SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error
	// SendChoice sends text with inline buttons carrying callback data.
	SendChoice(ctx context.Context, chatID int64, text string, choices [][]Choice) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// botAPI is the subset of tgbotapi.BotAPI the gateway uses. Tests replace it.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotGateway implements Gateway over the Telegram Bot API.
type BotGateway struct {
	api    botAPI
	logger *slog.Logger
}

// NewBotGateway authorizes against the Bot API with the provided token.
func NewBotGateway(token string, logger *slog.Logger) (*BotGateway, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}
	logger.Info("bot authorized", slog.String("username", api.Self.UserName))
	return &BotGateway{api: api, logger: logger}, nil
}

// SendText delivers a plain text message.
func (g *BotGateway) SendText(ctx context.Context, chatID int64, text string) error {
	return g.send(ctx, tgbotapi.NewMessage(chatID, text))
}

// SendPhoto delivers a photo from a local path with optional caption.
func (g *BotGateway) SendPhoto(ctx context.Context, chatID int64, photo, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(photo))
	msg.Caption = caption
	return g.send(ctx, msg)
}

// SendKeyboard delivers text with a reply keyboard.
func (g *BotGateway) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	keyboardRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		keyboardRows = append(keyboardRows, buttons)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(keyboardRows...)
	return g.send(ctx, msg)
}

// SendChoice delivers text with inline callback buttons.
func (g *BotGateway) SendChoice(ctx context.Context, chatID int64, text string, choices [][]Choice) error {
	inlineRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, row := range choices {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, choice := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Data))
		}
		inlineRows = append(inlineRows, buttons)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(inlineRows...)
	return g.send(ctx, msg)
}

// AnswerCallback acknowledges an inline button press.
func (g *BotGateway) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// Updates starts long polling and returns the inbound update channel.
func (g *BotGateway) Updates(timeout time.Duration) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(timeout / time.Second)
	return g.api.GetUpdatesChan(u)
}

// StopPolling terminates the long-poll loop.
func (g *BotGateway) StopPolling() {
	g.api.StopReceivingUpdates()
}

func (g *BotGateway) send(ctx context.Context, msg tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
