package domain

import (
	"regexp"
	"time"
)

// phonePattern is a permissive E.164 check: optional +, no leading zero,
// up to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidPhone reports whether phone looks like an E.164 number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// User models an account holder. The phone number is the durable identity;
// username and the profile fields arrive with registration.
type User struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username,omitempty"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"dateOfBirth,omitempty"`
	Location     string    `json:"location,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the decoded session subject attached to authenticated requests.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}
