package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

const (
	otpTTL      = 5 * time.Minute
	smsTemplate = "Your Bloom Buddy verification code is: %s"
)

// OTPService issues and verifies one-time codes per (phone, purpose).
type OTPService struct {
	codes    ports.OTPRepository
	users    ports.UserRepository
	auth     ports.AuthService
	cooldown ports.Cooldown
	sms      ports.SMSQueue
	log      zerolog.Logger
	now      func() time.Time
}

func NewOTPService(codes ports.OTPRepository, users ports.UserRepository, auth ports.AuthService, cooldown ports.Cooldown, sms ports.SMSQueue, log zerolog.Logger) *OTPService {
	return &OTPService{
		codes:    codes,
		users:    users,
		auth:     auth,
		cooldown: cooldown,
		sms:      sms,
		log:      log,
		now:      time.Now,
	}
}

// Issue validates the request, claims the per-(phone,purpose) cooldown,
// persists a fresh code, and queues the SMS. Delivery is best-effort: once
// the code is persisted the request has succeeded, whatever the SMS
// provider does.
func (s *OTPService) Issue(ctx context.Context, phone string, purpose domain.OTPPurpose) (*ports.IssueResult, error) {
	if phone == "" {
		return nil, domain.NewValidation("Phone number is required", "phone")
	}
	if !domain.ValidPhone(phone) {
		return nil, domain.NewValidation("Please enter a valid phone number", "phone")
	}
	if !domain.ValidPurpose(purpose) {
		return nil, domain.NewValidation("Purpose must be login or register", "purpose")
	}

	// Login presupposes an account; fail before creating any code.
	if purpose == domain.PurposeLogin {
		if _, err := s.users.FindByPhone(ctx, phone); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, &domain.Error{
					Kind:    domain.KindNotFound,
					Message: "No account found with this phone number. Please sign up first.",
					Field:   "phone",
				}
			}
			return nil, err
		}
	}

	ok, retryAfter, err := s.cooldown.Acquire(ctx, phone, purpose)
	if err != nil {
		// The limiter is best-effort: a broken limiter must not take
		// login down with it.
		s.log.Warn().Err(err).Str("phone", phone).Msg("otp cooldown unavailable, allowing issue")
	} else if !ok {
		return nil, &domain.Error{
			Kind:       domain.KindRateLimited,
			Message:    "Please wait 60 seconds before requesting another code",
			RetryAfter: retryAfter,
		}
	}

	code, err := generateCode(domain.OTPLength)
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	now := s.now().UTC()
	record := &domain.OneTimeCode{
		Phone:     phone,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}
	// Single atomic upsert: any previous code for this pair is displaced
	// in the same operation.
	if err := s.codes.Replace(ctx, record); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	s.sms.Enqueue(ports.SMSMessage{Phone: phone, Body: fmt.Sprintf(smsTemplate, code)})

	return &ports.IssueResult{Code: code}, nil
}

// Verify walks the outcome ladder in a fixed order: missing, expired,
// exhausted, mismatch, success. The exhaustion check runs before the code
// comparison, so a fourth attempt is rejected even when correct. Both
// success and exhaustion consume the code.
func (s *OTPService) Verify(ctx context.Context, phone, code string, purpose domain.OTPPurpose) (*ports.VerifyResult, error) {
	if phone == "" || code == "" || !domain.ValidPurpose(purpose) {
		return nil, domain.NewValidation("Phone, code, and purpose are required", "")
	}

	record, err := s.codes.Find(ctx, phone, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return nil, &domain.Error{
				Kind:    domain.KindNotFound,
				Message: "No verification code found. Please request a new one.",
				Action:  "resend",
			}
		}
		return nil, err
	}

	if record.Expired(s.now()) {
		if err := s.codes.Delete(ctx, phone, purpose); err != nil {
			s.log.Error().Err(err).Str("phone", phone).Msg("delete expired otp")
		}
		return nil, &domain.Error{
			Kind:    domain.KindExpired,
			Message: "Verification code has expired. Please request a new one.",
			Action:  "resend",
		}
	}

	if record.Exhausted() {
		if err := s.codes.Delete(ctx, phone, purpose); err != nil {
			s.log.Error().Err(err).Str("phone", phone).Msg("delete exhausted otp")
		}
		return nil, &domain.Error{
			Kind:    domain.KindAttemptsExhausted,
			Message: "Too many incorrect attempts. Please request a new code.",
			Action:  "resend",
		}
	}

	if record.Code != code {
		attempts, err := s.codes.IncrementAttempts(ctx, phone, purpose)
		if err != nil {
			return nil, fmt.Errorf("record failed attempt: %w", err)
		}
		remaining := domain.OTPMaxAttempts - attempts
		if remaining < 0 {
			remaining = 0
		}
		return nil, &domain.Error{
			Kind:              domain.KindValidation,
			Message:           fmt.Sprintf("Incorrect code. %d %s remaining.", remaining, plural(remaining, "attempt")),
			Field:             "code",
			AttemptsRemaining: remaining,
			HasAttempts:       true,
		}
	}

	// One-time use: success consumes the code before anything else happens.
	if err := s.codes.Delete(ctx, phone, purpose); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	if purpose == domain.PurposeRegister {
		return &ports.VerifyResult{Outcome: ports.OutcomeProfilePending}, nil
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &domain.Error{
				Kind:    domain.KindNotFound,
				Message: "Account not found. Please sign up first.",
			}
		}
		return nil, err
	}
	token, err := s.auth.IssueSession(user)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &ports.VerifyResult{Outcome: ports.OutcomeLoggedIn, Token: token, User: user}, nil
}

// generateCode draws n digits uniformly from crypto/rand. Leading zeros
// are kept: the code space is exactly 10^n.
func generateCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = '0' + byte(v.Int64())
	}
	return string(digits), nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
