package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by phone
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Phone]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user_%d", len(r.users)+1)
	}
	r.users[copy.Phone] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	if u, ok := r.users[phone]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Phone:    "+15551234567",
		Username: "alice",
		Password: "pass123",
		Location: "Austin",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected persisted user, got %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	cases := []struct {
		name  string
		in    ports.RegisterInput
		field string
	}{
		{"missing phone", ports.RegisterInput{Username: "a", Password: "p"}, "phone"},
		{"missing username", ports.RegisterInput{Phone: "+15551234567", Password: "p"}, "username"},
		{"missing password", ports.RegisterInput{Phone: "+15551234567", Username: "a"}, "password"},
		{"bad phone", ports.RegisterInput{Phone: "0abc", Username: "a", Password: "p"}, "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if de.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, de.Field)
			}
		})
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Phone: "+15551234567", Username: "bob", Password: "p"}); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), ports.RegisterInput{Phone: "+15551234567", Username: "other", Password: "p"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindConflict || de.Field != "phone" {
		t.Fatalf("expected phone conflict, got %v", err)
	}

	_, err = svc.Register(context.Background(), ports.RegisterInput{Phone: "+15559876543", Username: "bob", Password: "p"})
	if !errors.As(err, &de) || de.Kind != domain.KindConflict || de.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestAuthService_Login_ByPhoneWithoutPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Phone: "+15551234567", Username: "carol", Password: "otp-login"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// The OTP-first flow logs in by phone alone; phone ownership was
	// already proven by the verified code.
	token, user, err := svc.Login(context.Background(), ports.LoginInput{Phone: "+15551234567"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Phone: "+15551234567", Username: "dave", Password: "right"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Phone: "+15551234567", Password: "wrong"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Phone: "+15550000000"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, _, err = svc.Login(context.Background(), ports.LoginInput{Username: "ghost"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAuthService_IssueSession_Claims(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", 2*time.Hour)

	user := &domain.User{ID: "u1", Username: "erin", Phone: "+15551234567"}
	token, err := svc.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["userId"] != "u1" || claims["username"] != "erin" || claims["phone"] != "+15551234567" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	exp, _ := claims.GetExpirationTime()
	iat, _ := claims.GetIssuedAt()
	if exp == nil || iat == nil || exp.Sub(iat.Time) != 2*time.Hour {
		t.Fatalf("expected 2h lifetime, got iat=%v exp=%v", iat, exp)
	}
}
