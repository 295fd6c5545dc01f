package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// PlantInput carries the writable fields of a plant.
type PlantInput struct {
	GardenID string
	Name     string
	Species  string
	Notes    string
	PhotoURL string
}

// PlantService is the owner-scoped plant CRUD surface.
type PlantService interface {
	Create(ctx context.Context, ownerID string, in PlantInput) (*domain.Plant, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Plant, error)
	ListByGarden(ctx context.Context, ownerID, gardenID string) ([]domain.Plant, error)
	Update(ctx context.Context, ownerID, id string, in PlantInput) (*domain.Plant, error)
	Delete(ctx context.Context, ownerID, id string) error
}
