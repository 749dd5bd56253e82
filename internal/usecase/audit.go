package usecase

import (
	"context"

	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/domain/repository"
)

// AuditUseCase records user activity and referral attribution.
type AuditUseCase struct {
	audit repository.AuditRepository
}

// NewAuditUseCase constructs AuditUseCase.
func NewAuditUseCase(audit repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

// RecordActivity appends an action to the user log.
func (u *AuditUseCase) RecordActivity(ctx context.Context, userID int64, handle, action string) error {
	return u.audit.RecordActivity(ctx, userID, handle, action)
}

// RecordReferral attributes a first-seen user to a referral source.
func (u *AuditUseCase) RecordReferral(ctx context.Context, userID int64, handle, source string) (bool, error) {
	return u.audit.RecordReferral(ctx, userID, handle, source)
}

// Referrals lists referral records for the owner.
func (u *AuditUseCase) Referrals(ctx context.Context) ([]model.Referral, error) {
	return u.audit.Referrals(ctx)
}
