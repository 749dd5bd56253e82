package repository

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// PendingOrderRepository manages cart snapshots awaiting owner decision.
// CreateFromCart, Approve and Decline each run as a single transaction.
type PendingOrderRepository interface {
	// CreateFromCart snapshots the user's current cart lines into a new
	// pending order. The cart itself is left untouched. Returns ErrEmptyCart
	// when the user has no lines.
	CreateFromCart(ctx context.Context, userID int64, handle string) (*model.PendingOrder, error)
	Get(ctx context.Context, id int64) (*model.PendingOrder, error)
	List(ctx context.Context) ([]model.PendingOrder, error)
	// Approve promotes every snapshotted line into an order row with status
	// PROCESSING, clears the originating user's cart and deletes the pending
	// order. Returns ErrNotFound with no side effects when id is unknown.
	Approve(ctx context.Context, id int64) ([]model.Order, error)
	// Decline clears the originating user's cart and deletes the pending
	// order. Returns the removed snapshot so the user can be notified.
	Decline(ctx context.Context, id int64) (*model.PendingOrder, error)
}
