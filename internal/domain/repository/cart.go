package repository

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// CartRepository describes persistence operations with cart lines.
type CartRepository interface {
	Add(ctx context.Context, userID int64, item string, quantity int32, unitPrice int64) (*model.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)
	Clear(ctx context.Context, userID int64) error
	Total(ctx context.Context, userID int64) (int64, error)
}
