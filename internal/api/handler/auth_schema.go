package handler

import "github.com/bloombuddy/plant-care-api/internal/core/domain"

type registerRequest struct {
	Phone       string `json:"phone"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Location    string `json:"location,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

type loginRequest struct {
	Phone    string `json:"phone,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type sendOTPRequest struct {
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

type verifyOTPRequest struct {
	Phone   string `json:"phone"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// sessionUser is the public shape of a user inside auth responses.
type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

func toSessionUser(u *domain.User) *sessionUser {
	if u == nil {
		return nil
	}
	return &sessionUser{ID: u.ID, Username: u.Username, Phone: u.Phone}
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *sessionUser `json:"user,omitempty"`
	// DevCode carries the issued OTP back to the caller outside production
	// only, as a test/dev convenience.
	DevCode string `json:"devCode,omitempty"`
}
