package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// OTPRepository persists one-time codes. The store enforces at most one
// live code per (phone, purpose) and expires records at ExpiresAt on its own.
type OTPRepository interface {
	// Replace atomically upserts the code for (phone, purpose), displacing
	// any previous record in a single operation.
	Replace(ctx context.Context, code *domain.OneTimeCode) error
	// Find returns the outstanding code or domain.ErrCodeNotFound.
	Find(ctx context.Context, phone string, purpose domain.OTPPurpose) (*domain.OneTimeCode, error)
	// IncrementAttempts bumps the attempt counter and returns the new value.
	IncrementAttempts(ctx context.Context, phone string, purpose domain.OTPPurpose) (int, error)
	// Delete removes the outstanding code, if any.
	Delete(ctx context.Context, phone string, purpose domain.OTPPurpose) error
}
