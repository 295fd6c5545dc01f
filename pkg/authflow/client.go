// Package authflow is the client-side companion of the auth API: a small
// state machine mirroring the server's OTP flow, plus route guards that
// drive navigation from the current state.
//
// All mutating operations are serialized: a second call while one is in
// flight fails fast with ErrBusy instead of racing. Responses that arrive
// after the flow they belong to was abandoned (logout, new flow) are
// discarded.
package authflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

// Purpose tags which flow an OTP belongs to.
type Purpose string

const (
	PurposeLogin    Purpose = "login"
	PurposeRegister Purpose = "register"
)

// VerifyResult is the discriminated outcome of VerifyOTP. Expected
// failures come back as results, not errors.
type VerifyResult string

const (
	VerifyLoggedIn       VerifyResult = "logged_in"
	VerifyProfilePending VerifyResult = "profile_pending"
	VerifyInvalid        VerifyResult = "invalid"
	VerifyExpired        VerifyResult = "expired"
	VerifyRateLimited    VerifyResult = "rate_limited"
)

// ErrBusy is returned when a mutating operation is already in flight.
var ErrBusy = errors.New("authflow: operation already in flight")

// User is the authenticated identity as the client sees it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// Profile carries the fields collected on the profile-creation screen.
type Profile struct {
	Name        string
	DateOfBirth string
	Location    string
	Gender      string
}

// State is a point-in-time snapshot of the machine, safe to hand to UI code.
type State struct {
	Status  Status
	Phone   string
	Purpose Purpose
	Error   string
	Loading bool
	User    *User
}

// APIError is a structured failure from the server. Clients branch on Kind;
// Message is display-ready text.
type APIError struct {
	StatusCode        int    `json:"-"`
	Message           string `json:"message"`
	Kind              string `json:"kind"`
	Field             string `json:"field,omitempty"`
	Action            string `json:"action,omitempty"`
	AttemptsRemaining *int   `json:"attemptsRemaining,omitempty"`
	RetryAfter        int    `json:"retryAfter,omitempty"`
	Expired           bool   `json:"expired,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Kind, e.Message)
}

// Client is the auth state machine. One Client corresponds to one logical
// session (one browser tab's worth of state).
type Client struct {
	baseURL string
	httpc   *http.Client

	mu      sync.Mutex
	busy    bool
	flow    uint64
	status  Status
	phone   string
	purpose Purpose
	lastErr string
	user    *User
}

// NewClient creates a Client in the loading state. Call Start to resolve it.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("authflow: cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Jar: jar, Timeout: 15 * time.Second},
		status:  StatusLoading,
	}, nil
}

// Start resolves the initial state by probing the protected identity
// endpoint: a live session (cookie jar) yields authenticated, anything
// else yields unauthenticated. The machine never stays in loading.
func (c *Client) Start(ctx context.Context) {
	var resp struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Phone    string `json:"phone"`
	}
	err := c.do(ctx, http.MethodGet, "/protected", nil, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil || resp.UserID == "" {
		c.transition(StatusUnauthenticated)
		return
	}
	c.user = &User{ID: resp.UserID, Username: resp.Username, Phone: resp.Phone}
	c.transition(StatusAuthenticated)
}

// SendOTP requests a code for phone. On success the machine moves to
// otp_sent and the remembered (phone, purpose) drive the later VerifyOTP.
// devCode is non-empty only against non-production servers.
func (c *Client) SendOTP(ctx context.Context, phone string, purpose Purpose) (devCode string, err error) {
	if purpose == "" {
		purpose = PurposeLogin
	}
	flow, err := c.begin()
	if err != nil {
		return "", err
	}
	defer c.end()

	c.mu.Lock()
	c.phone = phone
	c.purpose = purpose
	c.mu.Unlock()

	var resp struct {
		DevCode string `json:"devCode"`
	}
	err = c.do(ctx, http.MethodPost, "/otp/send", map[string]string{
		"phone":   phone,
		"purpose": string(purpose),
	}, &resp)
	if err != nil {
		c.apply(flow, func() { c.lastErr = failureMessage(err) })
		return "", err
	}

	c.apply(flow, func() { c.transition(StatusOTPSent) })
	return resp.DevCode, nil
}

// VerifyOTP submits the typed code for the remembered (phone, purpose).
// Expected failures (wrong code, expired, throttled) return a result and a
// nil error; the machine stays in otp_sent so the user may retry or
// request a new code. Only transport-level problems return an error.
func (c *Client) VerifyOTP(ctx context.Context, code string) (VerifyResult, error) {
	flow, err := c.begin()
	if err != nil {
		return "", err
	}
	defer c.end()

	c.mu.Lock()
	phone, purpose := c.phone, c.purpose
	c.mu.Unlock()

	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	err = c.do(ctx, http.MethodPost, "/otp/verify", map[string]string{
		"phone":   phone,
		"code":    code,
		"purpose": string(purpose),
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			c.apply(flow, func() { c.lastErr = failureMessage(err) })
			return "", err
		}
		c.apply(flow, func() { c.lastErr = apiErr.Message })
		switch apiErr.Kind {
		case "expired", "not_found":
			return VerifyExpired, nil
		case "rate_limited", "attempts_exhausted":
			return VerifyRateLimited, nil
		default:
			return VerifyInvalid, nil
		}
	}

	if purpose == PurposeRegister {
		c.apply(flow, func() { c.transition(StatusProfilePending) })
		return VerifyProfilePending, nil
	}

	c.apply(flow, func() {
		c.user = resp.User
		c.transition(StatusAuthenticated)
	})
	return VerifyLoggedIn, nil
}

// CompleteProfile registers the account for the verified phone and then
// logs in by phone to obtain a session. The machine reaches authenticated
// only when both steps succeed.
func (c *Client) CompleteProfile(ctx context.Context, p Profile) error {
	flow, err := c.begin()
	if err != nil {
		return err
	}
	defer c.end()

	c.mu.Lock()
	phone := c.phone
	c.mu.Unlock()

	dob := p.DateOfBirth
	if dob == "" {
		dob = time.Now().UTC().Format(time.RFC3339)
	}
	location := p.Location
	if location == "" {
		location = "Unknown"
	}
	gender := p.Gender
	if gender == "" {
		gender = "Other"
	}

	register := map[string]string{
		"phone":       phone,
		"username":    p.Name,
		"password":    "otp-login",
		"dateOfBirth": dob,
		"location":    location,
		"gender":      gender,
	}
	if err := c.do(ctx, http.MethodPost, "/register", register, nil); err != nil {
		c.apply(flow, func() { c.lastErr = failureMessage(err) })
		return err
	}

	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", map[string]string{"phone": phone}, &resp); err != nil {
		c.apply(flow, func() { c.lastErr = failureMessage(err) })
		return err
	}

	c.apply(flow, func() {
		c.user = resp.User
		c.transition(StatusAuthenticated)
	})
	return nil
}

// Logout resets the machine to unauthenticated immediately and notifies
// the server in the background. It never fails and never blocks on the
// network; calling it while already unauthenticated is a no-op. Any
// operation still in flight belongs to the old flow and its late response
// is discarded.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	c.flow++
	c.phone = ""
	c.purpose = ""
	c.lastErr = ""
	c.user = nil
	c.transition(StatusUnauthenticated)
	c.mu.Unlock()

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = c.do(notifyCtx, http.MethodPost, "/logout", nil, nil)
	}()
}

// ClearError discards the last surfaced error message.
func (c *Client) ClearError() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Client) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Status:  c.status,
		Phone:   c.phone,
		Purpose: c.purpose,
		Error:   c.lastErr,
		Loading: c.busy,
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// begin claims the single in-flight slot and returns the flow the
// operation belongs to.
func (c *Client) begin() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return 0, ErrBusy
	}
	c.busy = true
	c.lastErr = ""
	return c.flow, nil
}

func (c *Client) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// apply runs fn under the lock, but only when the operation's flow is
// still current. A response that lands after logout changes nothing.
func (c *Client) apply(flow uint64, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if flow != c.flow {
		return
	}
	fn()
}

// transition moves to next when the state machine allows it. Illegal moves
// are dropped; they can only come from stale flows.
func (c *Client) transition(next Status) {
	if c.status == next || c.status.CanTransitionTo(next) {
		c.status = next
	}
}

// do issues a JSON request. Responses with error status decode into
// *APIError; everything else (transport, malformed body) is returned as-is.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authflow: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("authflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("authflow: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if decodeErr := json.NewDecoder(res.Body).Decode(apiErr); decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = res.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("authflow: decode response: %w", err)
		}
	}
	return nil
}

// failureMessage renders an error for UI display: API errors verbatim,
// anything else as a generic network failure.
func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Network error. Please check your connection and try again."
}
