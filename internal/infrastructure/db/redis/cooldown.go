package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// CooldownStore enforces the per-(phone, purpose) OTP issue cooldown with a
// single SET NX, so two concurrent issue calls cannot both pass the check.
// Key format: otp:cd:<purpose>:<phone>
type CooldownStore struct {
	client *redis.Client
	window time.Duration
}

// NewCooldownStore creates a CooldownStore with the given cooldown window.
func NewCooldownStore(client *redis.Client, window time.Duration) *CooldownStore {
	if window <= 0 {
		window = time.Minute
	}
	return &CooldownStore{client: client, window: window}
}

// Acquire claims the cooldown for (phone, purpose). When the claim is
// already held, retryAfter carries the whole seconds left on the window,
// rounded up and never below 1.
func (s *CooldownStore) Acquire(ctx context.Context, phone string, purpose domain.OTPPurpose) (bool, int, error) {
	key := s.key(phone, purpose)

	set, err := s.client.SetNX(ctx, key, "1", s.window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("cooldown setnx: %w", err)
	}
	if set {
		return true, 0, nil
	}

	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("cooldown ttl: %w", err)
	}
	retryAfter := int((ttl + time.Second - 1) / time.Second)
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter, nil
}

func (s *CooldownStore) key(phone string, purpose domain.OTPPurpose) string {
	return fmt.Sprintf("otp:cd:%s:%s", purpose, phone)
}
