package telegram

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ivmish/teremok/internal/config"
)

// Module exposes the Telegram gateway to the fx graph.
var Module = fx.Options(
	fx.Provide(newGateway),
	fx.Provide(func(g *BotGateway) Gateway { return g }),
)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (*BotGateway, error) {
	return NewBotGateway(p.Config.BotToken, p.Logger)
}
