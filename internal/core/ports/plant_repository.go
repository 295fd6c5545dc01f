package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// PlantRepository defines persistence for plants.
type PlantRepository interface {
	Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	ListByGarden(ctx context.Context, gardenID string) ([]domain.Plant, error)
	Update(ctx context.Context, plant *domain.Plant) error
	Delete(ctx context.Context, id string) error
}
