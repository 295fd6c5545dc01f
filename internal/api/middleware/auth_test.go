package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, lifetime time.Duration, userID string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": "alice",
		"phone":    "+15551234567",
		"iat":      now.Unix(),
		"exp":      now.Add(lifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// invoke runs the session middleware around a capturing handler and returns
// the identity it injected (if the chain ran) and the middleware error.
func invoke(t *testing.T, req *http.Request) (identity map[string]string, err error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured map[string]string
	h := Session(testSecret)(func(c echo.Context) error {
		captured = map[string]string{
			"userId":   c.Get("userId").(string),
			"username": c.Get("username").(string),
			"phone":    c.Get("phone").(string),
		}
		return c.NoContent(http.StatusOK)
	})
	return captured, h(c)
}

func TestSession_ValidCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, testSecret, jwt.SigningMethodHS256, time.Hour, "u1")})

	identity, err := invoke(t, req)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if identity["userId"] != "u1" || identity["username"] != "alice" || identity["phone"] != "+15551234567" {
		t.Fatalf("unexpected identity: %v", identity)
	}
}

func TestSession_ValidBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, time.Hour, "u2"))

	identity, err := invoke(t, req)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if identity["userId"] != "u2" {
		t.Fatalf("unexpected identity: %v", identity)
	}
}

func TestSession_CookieBeatsBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, testSecret, jwt.SigningMethodHS256, time.Hour, "cookie-user")})
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, time.Hour, "header-user"))

	identity, err := invoke(t, req)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if identity["userId"] != "cookie-user" {
		t.Fatalf("expected cookie to take precedence, got %v", identity)
	}
}

func TestSession_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	_, err := invoke(t, req)
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if de.SessionExpired {
		t.Fatalf("missing token must not be reported as expired")
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, testSecret, jwt.SigningMethodHS256, -time.Minute, "u1")})

	_, err := invoke(t, req)
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if !de.SessionExpired {
		t.Fatalf("expected expired flag on %+v", de)
	}
	if de.Action != "login" {
		t.Fatalf("expected login action, got %q", de.Action)
	}
}

func TestSession_WrongSignature(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, "other-secret", jwt.SigningMethodHS256, time.Hour, "u1")})

	_, err := invoke(t, req)
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if de.SessionExpired {
		t.Fatalf("forged token must not be reported as expired")
	}
}

func TestSession_RejectsForeignAlgorithm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, testSecret, jwt.SigningMethodHS512, time.Hour, "u1")})

	_, err := invoke(t, req)
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized for HS512 token, got %v", err)
	}
}

func TestSession_MalformedAuthorizationHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)

		_, err := invoke(t, req)
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.KindUnauthorized {
			t.Fatalf("header %q: expected unauthorized, got %v", header, err)
		}
	}
}
