package bot

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// CartFacade covers catalog browsing and cart mutation.
type CartFacade interface {
	CatalogItems() []model.CatalogItem
	CatalogItem(name string) (model.CatalogItem, bool)
	AddToCart(ctx context.Context, userID int64, item string, quantity int32) (*model.CartLine, error)
	CartLines(ctx context.Context, userID int64) ([]model.CartLine, error)
	CartTotal(ctx context.Context, userID int64) (int64, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderFacade covers the submit/approve/decline workflow and the ledger.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error)
	PendingOrders(ctx context.Context) ([]model.PendingOrder, error)
	ApproveOrder(ctx context.Context, id int64) ([]model.Order, error)
	DeclineOrder(ctx context.Context, id int64) (*model.PendingOrder, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) (*model.Order, error)
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	RecentOrders(ctx context.Context, includeDelivered bool) ([]model.Order, error)
}

// SubscriptionFacade covers broadcast opt-in.
type SubscriptionFacade interface {
	Subscribe(ctx context.Context, userID int64, handle string) error
	Unsubscribe(ctx context.Context, userID int64, handle string) error
}

// OwnerFacade covers administrative identity and audit.
type OwnerFacade interface {
	IsOwner(chatID int64) bool
	OwnerChatID() int64
	RecordActivity(ctx context.Context, userID int64, handle, action string)
	RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error)
}

// Facade aggregates everything the update router needs.
type Facade interface {
	CartFacade
	OrderFacade
	SubscriptionFacade
	OwnerFacade
}
