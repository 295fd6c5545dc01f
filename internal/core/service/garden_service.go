package service

import (
	"context"
	"time"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

// GardenService implements owner-scoped garden CRUD.
type GardenService struct {
	gardens ports.GardenRepository
}

func NewGardenService(gardens ports.GardenRepository) *GardenService {
	return &GardenService{gardens: gardens}
}

func (s *GardenService) Create(ctx context.Context, ownerID string, in ports.GardenInput) (*domain.Garden, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("Garden name is required", "name")
	}

	now := time.Now().UTC()
	garden := &domain.Garden{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.gardens.Create(ctx, garden)
}

func (s *GardenService) Get(ctx context.Context, ownerID, id string) (*domain.Garden, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *GardenService) List(ctx context.Context, ownerID string) ([]domain.Garden, error) {
	return s.gardens.ListByOwner(ctx, ownerID)
}

func (s *GardenService) Update(ctx context.Context, ownerID, id string, in ports.GardenInput) (*domain.Garden, error) {
	garden, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		garden.Name = in.Name
	}
	garden.Description = in.Description
	garden.Location = in.Location
	garden.UpdatedAt = time.Now().UTC()

	if err := s.gardens.Update(ctx, garden); err != nil {
		return nil, err
	}
	return garden, nil
}

func (s *GardenService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.gardens.Delete(ctx, id)
}

// owned fetches the garden and enforces that it belongs to the caller.
func (s *GardenService) owned(ctx context.Context, ownerID, id string) (*domain.Garden, error) {
	garden, err := s.gardens.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if garden.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return garden, nil
}
