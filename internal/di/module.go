package di

import (
	"go.uber.org/fx"

	"github.com/ivmish/teremok/internal/adapter/telegram"
	"github.com/ivmish/teremok/internal/app"
	"github.com/ivmish/teremok/internal/bot"
	"github.com/ivmish/teremok/internal/catalog"
	"github.com/ivmish/teremok/internal/config"
	"github.com/ivmish/teremok/internal/logger"
	"github.com/ivmish/teremok/internal/pkg/auth"
	"github.com/ivmish/teremok/internal/server/http/handlers"
	"github.com/ivmish/teremok/internal/server/http/router"
	"github.com/ivmish/teremok/internal/storage/postgres"
	"github.com/ivmish/teremok/internal/usecase"
	"github.com/ivmish/teremok/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		catalog.Module,
		telegram.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.GuesthouseFacade) handlers.AdminFacade { return f },
			func(d *worker.BroadcastDispatcher) handlers.Broadcaster { return d },
			func(b *bot.Bot) handlers.UpdateSink { return b },
			func(s *postgres.Storage) handlers.Pinger { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
