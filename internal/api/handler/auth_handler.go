package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/api/metrics"
	"github.com/bloombuddy/plant-care-api/internal/api/middleware"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

// AuthHandler serves registration, login, logout, and the protected
// identity probe.
type AuthHandler struct {
	authService  ports.AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

// Register creates a new user account (called after OTP verification in the
// register flow).
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.RegisterInput{
		Phone:    req.Phone,
		Username: req.Username,
		Password: req.Password,
		Location: req.Location,
		Gender:   req.Gender,
	}
	if req.DateOfBirth != "" {
		if dob, err := time.Parse(time.RFC3339, req.DateOfBirth); err == nil {
			in.DateOfBirth = dob
		} else if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			in.DateOfBirth = dob
		}
	}

	if _, err := h.authService.Register(c.Request().Context(), in); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Message: "Account created successfully! Welcome to Bloom Buddy!"})
}

// Login authenticates by phone or username and issues a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Phone:    req.Phone,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	flow := "password"
	if req.Password == "" {
		flow = "registration"
	}
	metrics.SessionsIssuedTotal.WithLabelValues(flow).Inc()

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{
		Message: "Welcome back!",
		Token:   token,
		User:    toSessionUser(user),
	})
}

// Logout clears the session cookie. Sessions are stateless, so there is
// nothing to revoke server-side; this endpoint always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, authResponse{Message: "Logged out successfully"})
}

// Protected returns the caller identity. Clients probe it at startup to
// resolve whether a live session exists.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /protected [get]
func (h *AuthHandler) Protected(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// setSessionCookie mirrors the token into an HTTP-only cookie. The token is
// also returned in the body: cookies serve browsers, the body serves
// bearer-token API clients.
func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
