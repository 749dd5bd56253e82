package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/worker"
)

// AuthFacade describes owner authentication capabilities required by handlers.
type AuthFacade interface {
	AuthenticateOwner(password string) (string, error)
	ParseAdminToken(token string) (int64, error)
}

// OrderFacade encapsulates ledger operations exposed via HTTP.
type OrderFacade interface {
	PendingOrders(ctx context.Context) ([]model.PendingOrder, error)
	ApproveOrder(ctx context.Context, id int64) ([]model.Order, error)
	DeclineOrder(ctx context.Context, id int64) (*model.PendingOrder, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) (*model.Order, error)
	RecentOrders(ctx context.Context, includeDelivered bool) ([]model.Order, error)
}

// AuditFacade exposes the owner's audit views.
type AuditFacade interface {
	Subscribers(ctx context.Context) ([]model.Subscriber, error)
	Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error)
	Referrals(ctx context.Context) ([]model.Referral, error)
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	AuthFacade
	OrderFacade
	AuditFacade
}

// Broadcaster schedules announcement fan-out.
type Broadcaster interface {
	Enqueue(ctx context.Context, text string, notify func(worker.Result)) (int, error)
}

// UpdateSink consumes webhook updates.
type UpdateSink interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}
