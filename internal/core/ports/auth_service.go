package ports

import (
	"context"
	"time"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// RegisterInput carries the fields collected at profile completion.
type RegisterInput struct {
	Phone       string
	Username    string
	Password    string
	DateOfBirth time.Time
	Location    string
	Gender      string
}

// LoginInput identifies the account by phone or username. Password is
// optional: the OTP-first flow logs in by phone right after registration
// without re-entering a password.
type LoginInput struct {
	Phone    string
	Username string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (token string, user *domain.User, err error)
	// IssueSession mints a signed session token for an already-verified user.
	IssueSession(user *domain.User) (string, error)
}
