package domain

import "errors"

// ErrorKind classifies a failure so clients can branch on a stable code
// instead of sniffing message text.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindConflict          ErrorKind = "conflict"
	KindNotFound          ErrorKind = "not_found"
	KindExpired           ErrorKind = "expired"
	KindAttemptsExhausted ErrorKind = "attempts_exhausted"
	KindRateLimited       ErrorKind = "rate_limited"
	KindUnauthorized      ErrorKind = "unauthorized"
)

// Error is a domain failure carrying everything the API layer needs to
// render an actionable response. Optional fields stay zero when unused.
type Error struct {
	Kind              ErrorKind
	Message           string
	Field             string // offending request field, if any
	Action            string // suggested client action: "login", "resend"
	AttemptsRemaining int
	HasAttempts       bool // distinguishes "0 remaining" from "not applicable"
	RetryAfter        int  // seconds until the caller may retry
	SessionExpired    bool // unauthorized specifically because the token expired
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match any *Error of the same kind, so services can
// compare against the sentinel helpers below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NewValidation(message, field string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

func NewConflict(message, field string) *Error {
	return &Error{Kind: KindConflict, Message: message, Field: field}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Action: "login"}
}

// Sentinels for errors.Is comparisons. Repositories and services return
// richer *Error values; these exist only as match targets.
var (
	ErrUserNotFound = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrUserExists   = &Error{Kind: KindConflict, Message: "user already exists"}
	ErrCodeNotFound = &Error{Kind: KindNotFound, Message: "no verification code found"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrRateLimited  = &Error{Kind: KindRateLimited, Message: "rate limited"}

	ErrGardenNotFound = errors.New("garden not found")
	ErrPlantNotFound  = errors.New("plant not found")
	ErrForbidden      = errors.New("access forbidden")
)
