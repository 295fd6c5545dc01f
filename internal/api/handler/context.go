package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware. An
// empty userId means the middleware did not run on this route, which is a
// wiring bug surfaced as 401 rather than a panic downstream.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get("userId").(string)
	if userID == "" {
		return domain.Identity{}, domain.NewUnauthorized("Please log in to access this feature")
	}
	username, _ := c.Get("username").(string)
	phone, _ := c.Get("phone").(string)

	return domain.Identity{UserID: userID, Username: username, Phone: phone}, nil
}
