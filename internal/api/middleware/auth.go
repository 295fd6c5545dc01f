package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/api/metrics"
	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "auth_token"

// Session validates the session token and injects the caller identity into
// the request context. Token sources, in precedence order: the auth_token
// cookie, then an Authorization: Bearer header. Expired tokens are
// distinguished from invalid ones so clients can react differently.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.NewUnauthorized("Please log in to access this feature")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
					return &domain.Error{
						Kind:           domain.KindUnauthorized,
						Message:        "Your session has expired. Please log in again.",
						Action:         "login",
						SessionExpired: true,
					}
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.NewUnauthorized("Invalid session. Please log in again.")
			}

			userID, _ := claims["userId"].(string)
			username, _ := claims["username"].(string)
			phone, _ := claims["phone"].(string)
			c.Set("userId", userID)
			c.Set("username", username)
			c.Set("phone", phone)

			return next(c)
		}
	}
}

// tokenFromRequest extracts the session token: cookie first, then bearer.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
