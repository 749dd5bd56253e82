package repository

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// SubscriptionRepository manages the broadcast opt-in list and its audit log.
type SubscriptionRepository interface {
	// Subscribe upserts the user into the subscriber list. Idempotent.
	Subscribe(ctx context.Context, userID int64, handle string) error
	// Unsubscribe removes the user and appends an unsubscription audit
	// entry. Unsubscribing an unknown user is a no-op for the removal but
	// still logged.
	Unsubscribe(ctx context.Context, userID int64, handle string) error
	List(ctx context.Context) ([]model.Subscriber, error)
	Unsubscriptions(ctx context.Context, limit int) ([]model.Unsubscription, error)
}
