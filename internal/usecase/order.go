package usecase

import (
	"context"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// OrderUseCase encapsulates the pending queue and the order ledger.
type OrderUseCase struct {
	pendings repository.PendingOrderRepository
	orders   repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(pendings repository.PendingOrderRepository, orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{pendings: pendings, orders: orders}
}

// Submit snapshots the user's cart into a pending order awaiting owner
// decision. The cart is left intact until the owner acts.
func (u *OrderUseCase) Submit(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error) {
	return u.pendings.CreateFromCart(ctx, userID, handle)
}

// Pending returns the pending order by identifier.
func (u *OrderUseCase) Pending(ctx context.Context, id int64) (*model.PendingOrder, error) {
	return u.pendings.Get(ctx, id)
}

// PendingList returns every unresolved pending order, oldest first.
func (u *OrderUseCase) PendingList(ctx context.Context) ([]model.PendingOrder, error) {
	return u.pendings.List(ctx)
}

// Approve promotes the pending snapshot into ledger rows and clears the
// originating cart. A second call for the same id returns ErrNotFound.
func (u *OrderUseCase) Approve(ctx context.Context, id int64) ([]model.Order, error) {
	return u.pendings.Approve(ctx, id)
}

// Decline discards the pending snapshot and clears the originating cart.
func (u *OrderUseCase) Decline(ctx context.Context, id int64) (*model.PendingOrder, error) {
	return u.pendings.Decline(ctx, id)
}

// SetStatus moves an order to a new status within the closed enumeration.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

// Delete removes a ledger row regardless of its status.
func (u *OrderUseCase) Delete(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.Delete(ctx, orderID)
}

// ListForUser returns the user's order history, most recent first.
func (u *OrderUseCase) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Recent returns the owner's action queue.
func (u *OrderUseCase) Recent(ctx context.Context, limit int, includeDelivered bool) ([]model.Order, error) {
	return u.orders.ListRecent(ctx, limit, includeDelivered)
}
