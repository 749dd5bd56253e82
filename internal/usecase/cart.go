package usecase

import (
	"context"

	"github.com/ivmish/teremok/internal/catalog"
	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// CartUseCase manages per-user shopping carts. Unit prices are captured
// from the catalog at add time.
type CartUseCase struct {
	carts   repository.CartRepository
	catalog *catalog.Catalog
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, cat *catalog.Catalog) *CartUseCase {
	return &CartUseCase{carts: carts, catalog: cat}
}

// Add appends a cart line for the named catalog item.
func (u *CartUseCase) Add(ctx context.Context, userID int64, item string, quantity int32) (*model.CartLine, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	catalogItem, ok := u.catalog.Get(item)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	return u.carts.Add(ctx, userID, catalogItem.Name, quantity, catalogItem.Price)
}

// List returns the user's cart lines in insertion order.
func (u *CartUseCase) List(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return u.carts.ListByUser(ctx, userID)
}

// Clear removes every line from the user's cart. Clearing an empty cart
// is not an error.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}

// Total returns the derived cart sum; 0 for an empty cart.
func (u *CartUseCase) Total(ctx context.Context, userID int64) (int64, error) {
	return u.carts.Total(ctx, userID)
}

// Items exposes the catalog for menu rendering.
func (u *CartUseCase) Items() []model.CatalogItem {
	return u.catalog.Items()
}

// Item returns a catalog entry by display name.
func (u *CartUseCase) Item(name string) (model.CatalogItem, bool) {
	return u.catalog.Get(name)
}
