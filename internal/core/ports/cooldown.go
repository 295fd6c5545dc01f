package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// Cooldown gates OTP issuance per (phone, purpose). Acquire atomically
// claims the cooldown window; ok is false when a prior claim is still live,
// with retryAfter reporting the seconds left.
type Cooldown interface {
	Acquire(ctx context.Context, phone string, purpose domain.OTPPurpose) (ok bool, retryAfter int, err error)
}
