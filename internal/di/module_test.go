package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/ivmish/teremok/internal/adapter/telegram"
	"github.com/ivmish/teremok/internal/app"
	"github.com/ivmish/teremok/internal/config"
	"github.com/ivmish/teremok/internal/domain/repository"
	"github.com/ivmish/teremok/internal/storage/postgres"
	"github.com/ivmish/teremok/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		BotToken:         "token",
		OwnerChatID:      1,
		TokenSecret:      "secret",
		PollTimeout:      time.Second,
		BroadcastWorkers: 1,
		ShutdownTimeout:  time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repos := test.NewFactoryStub()
	gateway := &test.GatewayStub{}

	var facade *app.GuesthouseFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&telegram.BotGateway{}),
			fx.Replace(telegram.Gateway(gateway)),
			fx.Replace(repository.CartRepository(repos.Cart)),
			fx.Replace(repository.PendingOrderRepository(repos.Pending)),
			fx.Replace(repository.OrderRepository(repos.Order)),
			fx.Replace(repository.SubscriptionRepository(repos.Subscription)),
			fx.Replace(repository.AuditRepository(repos.AuditRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected guesthouse facade instance")
	}
}
