package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

type gardenRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Location    string `json:"location"    validate:"max=200"`
}

// GardenHandler serves the owner-scoped garden CRUD routes.
type GardenHandler struct {
	gardens ports.GardenService
}

func NewGardenHandler(gardens ports.GardenService) *GardenHandler {
	return &GardenHandler{gardens: gardens}
}

// Create handles POST /v1/gardens.
func (h *GardenHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req gardenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	garden, err := h.gardens.Create(c.Request().Context(), identity.UserID, ports.GardenInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, garden)
}

// List handles GET /v1/gardens.
func (h *GardenHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	gardens, err := h.gardens.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gardens)
}

// Get handles GET /v1/gardens/:id.
func (h *GardenHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	garden, err := h.gardens.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, garden)
}

// Update handles PUT /v1/gardens/:id.
func (h *GardenHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req gardenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	garden, err := h.gardens.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.GardenInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, garden)
}

// Delete handles DELETE /v1/gardens/:id.
func (h *GardenHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.gardens.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
