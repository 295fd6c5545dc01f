package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

// AuthService implements registration, login, and session issuance.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Phone == "" {
		return nil, domain.NewValidation("Phone number is required", "phone")
	}
	if in.Username == "" {
		return nil, domain.NewValidation("Username is required", "username")
	}
	if in.Password == "" {
		return nil, domain.NewValidation("Password is required", "password")
	}
	if !domain.ValidPhone(in.Phone) {
		return nil, domain.NewValidation("Please enter a valid phone number", "phone")
	}

	if _, err := s.users.FindByPhone(ctx, in.Phone); err == nil {
		return nil, domain.NewConflict("An account with this phone number already exists", "phone")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.NewConflict("This username is already taken", "username")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Phone:        in.Phone,
		Username:     in.Username,
		PasswordHash: string(hash),
		DateOfBirth:  in.DateOfBirth,
		Location:     in.Location,
		Gender:       in.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

// Login resolves the account by phone (preferred) or username. When a
// password is supplied it must match; when absent the call succeeds on
// existence alone. The password-less path exists for the OTP-first flow,
// where registration is immediately followed by login-by-phone and phone
// ownership was already proven by a verified code.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	if in.Phone == "" && in.Username == "" {
		return "", nil, domain.NewValidation("Phone number or username is required", "phone")
	}

	var (
		user *domain.User
		err  error
	)
	if in.Phone != "" {
		user, err = s.users.FindByPhone(ctx, in.Phone)
	} else {
		user, err = s.users.FindByUsername(ctx, in.Username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if in.Phone != "" {
				return "", nil, &domain.Error{Kind: domain.KindNotFound, Message: "No account found with this phone number", Field: "phone"}
			}
			return "", nil, &domain.Error{Kind: domain.KindNotFound, Message: "No account found with this username", Field: "username"}
		}
		return "", nil, err
	}

	if in.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
			return "", nil, &domain.Error{Kind: domain.KindUnauthorized, Message: "Incorrect password", Field: "password"}
		}
	}

	token, err := s.IssueSession(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueSession mints a signed HS256 token carrying the caller identity.
// Sessions are stateless: there is no revocation list, and a token stays
// valid until its natural expiry.
func (s *AuthService) IssueSession(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"phone":    user.Phone,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
