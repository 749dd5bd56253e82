package usecase

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// SubscriptionUseCase manages the broadcast opt-in registry.
type SubscriptionUseCase struct {
	subs repository.SubscriptionRepository
}

// NewSubscriptionUseCase constructs SubscriptionUseCase.
func NewSubscriptionUseCase(subs repository.SubscriptionRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{subs: subs}
}

// Subscribe opts the user into broadcasts. Idempotent.
func (u *SubscriptionUseCase) Subscribe(ctx context.Context, userID int64, handle string) error {
	return u.subs.Subscribe(ctx, userID, handle)
}

// Unsubscribe opts the user out and appends an audit entry.
func (u *SubscriptionUseCase) Unsubscribe(ctx context.Context, userID int64, handle string) error {
	return u.subs.Unsubscribe(ctx, userID, handle)
}

// Subscribers returns the current opt-in list for fan-out.
func (u *SubscriptionUseCase) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	return u.subs.List(ctx)
}

// Unsubscriptions returns recent audit entries for the owner.
func (u *SubscriptionUseCase) Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error) {
	return u.subs.Unsubscriptions(ctx, limit)
}
