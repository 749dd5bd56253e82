package repository

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
)

// AuditRepository records user activity and referrals. Both tables are
// append-only from the bot's point of view.
type AuditRepository interface {
	RecordActivity(ctx context.Context, userID int64, handle, action string) error
	// RecordReferral stores the referral source for a first-seen user.
	// Returns false when the user was already registered.
	RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error)
	Referrals(ctx context.Context) ([]model.Referral, error)
}
