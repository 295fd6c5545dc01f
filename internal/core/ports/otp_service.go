package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// IssueResult confirms that a code was persisted. Code is surfaced so the
// handler can echo it outside production; it must never reach clients in
// production.
type IssueResult struct {
	Code string
}

// VerifyOutcome enumerates the two success shapes of code verification.
type VerifyOutcome string

const (
	// OutcomeLoggedIn: purpose was login, a session token was issued.
	OutcomeLoggedIn VerifyOutcome = "logged_in"
	// OutcomeProfilePending: purpose was register, the caller must now
	// complete the profile before a session exists.
	OutcomeProfilePending VerifyOutcome = "profile_pending"
)

// VerifyResult is returned on successful verification. Token and User are
// populated only for OutcomeLoggedIn.
type VerifyResult struct {
	Outcome VerifyOutcome
	Token   string
	User    *domain.User
}

// OTPService issues and verifies one-time codes. All expected failure
// shapes (rate limited, invalid, expired, exhausted, not found) come back
// as *domain.Error values.
type OTPService interface {
	Issue(ctx context.Context, phone string, purpose domain.OTPPurpose) (*IssueResult, error)
	Verify(ctx context.Context, phone, code string, purpose domain.OTPPurpose) (*VerifyResult, error)
}
