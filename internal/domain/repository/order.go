package repository

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// OrderRepository describes persistence operations with the order ledger.
// Rows are created only by PendingOrderRepository.Approve.
type OrderRepository interface {
	Get(ctx context.Context, orderID int64) (*model.Order, error)
	// UpdateStatus sets the new status and returns the updated order.
	// Transitions out of a terminal status fail with ErrInvalidStatus.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	// Delete removes the row and returns it so the owning user can be told.
	Delete(ctx context.Context, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int, includeDelivered bool) ([]model.Order, error)
}
