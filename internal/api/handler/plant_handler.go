package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

type plantRequest struct {
	GardenID string `json:"gardenId" validate:"required"`
	Name     string `json:"name"     validate:"required,max=100"`
	Species  string `json:"species"  validate:"max=200"`
	Notes    string `json:"notes"    validate:"max=1000"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

// PlantHandler serves the owner-scoped plant CRUD routes.
type PlantHandler struct {
	plants ports.PlantService
}

func NewPlantHandler(plants ports.PlantService) *PlantHandler {
	return &PlantHandler{plants: plants}
}

// Create handles POST /v1/plants.
func (h *PlantHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plant, err := h.plants.Create(c.Request().Context(), identity.UserID, ports.PlantInput{
		GardenID: req.GardenID,
		Name:     req.Name,
		Species:  req.Species,
		Notes:    req.Notes,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plant)
}

// ListByGarden handles GET /v1/gardens/:id/plants.
func (h *PlantHandler) ListByGarden(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	plants, err := h.plants.ListByGarden(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plants)
}

// Get handles GET /v1/plants/:id.
func (h *PlantHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	plant, err := h.plants.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plant)
}

// Update handles PUT /v1/plants/:id.
func (h *PlantHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plant, err := h.plants.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.PlantInput{
		GardenID: req.GardenID,
		Name:     req.Name,
		Species:  req.Species,
		Notes:    req.Notes,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plant)
}

// Delete handles DELETE /v1/plants/:id.
func (h *PlantHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.plants.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
