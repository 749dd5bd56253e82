package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ivmish/teremok/internal/adapter/telegram"
	"github.com/ivmish/teremok/internal/bot"
	"github.com/ivmish/teremok/internal/config"
	"github.com/ivmish/teremok/internal/pkg/ratelimit"
	"github.com/ivmish/teremok/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		func(g telegram.Gateway) Notifier { return g },
		NewGuesthouseFacade,
		newHTTPServer,
		newDispatcher,
		newBot,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Facade  *GuesthouseFacade
	Gateway telegram.Gateway
	Config  *config.Config
	Logger  *slog.Logger
}

func newDispatcher(p dispatcherParams) *worker.BroadcastDispatcher {
	return worker.NewBroadcastDispatcher(p.Facade, p.Gateway, p.Config.BroadcastWorkers, p.Logger)
}

type botParams struct {
	fx.In

	Facade     *GuesthouseFacade
	Gateway    *telegram.BotGateway
	Dispatcher *worker.BroadcastDispatcher
	Config     *config.Config
	Logger     *slog.Logger
}

func newBot(p botParams) *bot.Bot {
	return bot.New(p.Facade, p.Gateway, p.Gateway, p.Dispatcher,
		ratelimit.New(p.Config.SubmitMinInterval),
		bot.Options{
			PollTimeout: p.Config.PollTimeout,
			// Webhook deployments receive updates over HTTP instead.
			Polling: p.Config.WebhookSecret == "",
		},
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Bot        *bot.Bot
	Dispatcher *worker.BroadcastDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting teremok", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)
			p.Bot.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Bot.Stop()
			p.Dispatcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("teremok stopped")
			return nil
		},
	})
}
