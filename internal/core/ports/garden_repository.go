package ports

import (
	"context"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// GardenRepository defines persistence for gardens.
type GardenRepository interface {
	Create(ctx context.Context, garden *domain.Garden) (*domain.Garden, error)
	FindByID(ctx context.Context, id string) (*domain.Garden, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Garden, error)
	Update(ctx context.Context, garden *domain.Garden) error
	Delete(ctx context.Context, id string) error
}
