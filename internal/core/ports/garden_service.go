package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// GardenInput carries the writable fields of a garden.
type GardenInput struct {
	Name        string
	Description string
	Location    string
}

// GardenService is the owner-scoped garden CRUD surface.
type GardenService interface {
	Create(ctx context.Context, ownerID string, in GardenInput) (*domain.Garden, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Garden, error)
	List(ctx context.Context, ownerID string) ([]domain.Garden, error)
	Update(ctx context.Context, ownerID, id string, in GardenInput) (*domain.Garden, error)
	Delete(ctx context.Context, ownerID, id string) error
}
