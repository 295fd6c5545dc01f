package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/api/metrics"
	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

// OTPHandler serves code issuance and verification.
type OTPHandler struct {
	otpService ports.OTPService
	auth       *AuthHandler
	production bool
}

// NewOTPHandler creates an OTPHandler. The auth handler is borrowed for its
// session-cookie plumbing on the login-verify path; production suppresses
// the devCode echo.
func NewOTPHandler(otpService ports.OTPService, auth *AuthHandler, production bool) *OTPHandler {
	return &OTPHandler{otpService: otpService, auth: auth, production: production}
}

// Send issues a one-time code for the given phone and purpose.
//
// @Summary      Send a verification code
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Phone and purpose"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /otp/send [post]
func (h *OTPHandler) Send(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	purpose := domain.OTPPurpose(req.Purpose)
	result, err := h.otpService.Issue(c.Request().Context(), req.Phone, purpose)
	if err != nil {
		return err
	}
	metrics.OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()

	resp := authResponse{Message: "Verification code sent to your phone"}
	if !h.production {
		resp.DevCode = result.Code
	}
	return c.JSON(http.StatusOK, resp)
}

// Verify checks a submitted code. On success the login purpose issues a
// session; the register purpose reports that profile completion is next.
//
// @Summary      Verify a code
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Phone, code, purpose"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      410   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /otp/verify [post]
func (h *OTPHandler) Verify(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	purpose := domain.OTPPurpose(req.Purpose)
	result, err := h.otpService.Verify(c.Request().Context(), req.Phone, req.Code, purpose)
	if err != nil {
		metrics.OTPVerifyTotal.WithLabelValues(string(purpose), verifyFailureLabel(err)).Inc()
		return err
	}
	metrics.OTPVerifyTotal.WithLabelValues(string(purpose), string(result.Outcome)).Inc()

	if result.Outcome == ports.OutcomeLoggedIn {
		metrics.SessionsIssuedTotal.WithLabelValues("otp").Inc()
		h.auth.setSessionCookie(c, result.Token)
		return c.JSON(http.StatusOK, authResponse{
			Message: "Welcome back!",
			Token:   result.Token,
			User:    toSessionUser(result.User),
		})
	}

	return c.JSON(http.StatusOK, authResponse{Message: "Phone number verified successfully!"})
}

func verifyFailureLabel(err error) string {
	var de *domain.Error
	if !errors.As(err, &de) {
		return "error"
	}
	switch de.Kind {
	case domain.KindValidation:
		return "invalid"
	case domain.KindExpired:
		return "expired"
	case domain.KindAttemptsExhausted:
		return "exhausted"
	case domain.KindNotFound:
		return "not_found"
	default:
		return "error"
	}
}
