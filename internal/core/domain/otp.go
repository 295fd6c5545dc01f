package domain

import "time"

// OTPPurpose scopes a one-time code to the flow that requested it. Codes
// for login and register are rate-limited and verified independently.
type OTPPurpose string

const (
	PurposeLogin    OTPPurpose = "login"
	PurposeRegister OTPPurpose = "register"
)

// ValidPurpose reports whether p is a member of the closed purpose enum.
func ValidPurpose(p OTPPurpose) bool {
	return p == PurposeLogin || p == PurposeRegister
}

const (
	// OTPLength is the number of digits in a generated code.
	OTPLength = 6
	// OTPMaxAttempts bounds wrong-code submissions before the code is
	// invalidated and must be reissued.
	OTPMaxAttempts = 3
)

// OneTimeCode is the persisted OTP record. At most one live code exists per
// (phone, purpose); issuing a new one replaces it.
type OneTimeCode struct {
	Phone     string
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
}

// Expired reports whether the code is past its deadline. The boundary is
// inclusive: a code checked exactly at ExpiresAt is already expired.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Exhausted reports whether the attempt budget has been spent.
func (c *OneTimeCode) Exhausted() bool {
	return c.Attempts >= OTPMaxAttempts
}
