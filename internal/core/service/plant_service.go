package service

import (
	"context"
	"time"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

// PlantService implements owner-scoped plant CRUD. Plants always live
// inside one of the caller's gardens.
type PlantService struct {
	plants  ports.PlantRepository
	gardens ports.GardenRepository
}

func NewPlantService(plants ports.PlantRepository, gardens ports.GardenRepository) *PlantService {
	return &PlantService{plants: plants, gardens: gardens}
}

func (s *PlantService) Create(ctx context.Context, ownerID string, in ports.PlantInput) (*domain.Plant, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("Plant name is required", "name")
	}
	if in.GardenID == "" {
		return nil, domain.NewValidation("Garden is required", "gardenId")
	}
	if err := s.ownGarden(ctx, ownerID, in.GardenID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plant := &domain.Plant{
		OwnerID:   ownerID,
		GardenID:  in.GardenID,
		Name:      in.Name,
		Species:   in.Species,
		Notes:     in.Notes,
		PhotoURL:  in.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.plants.Create(ctx, plant)
}

func (s *PlantService) Get(ctx context.Context, ownerID, id string) (*domain.Plant, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *PlantService) ListByGarden(ctx context.Context, ownerID, gardenID string) ([]domain.Plant, error) {
	if err := s.ownGarden(ctx, ownerID, gardenID); err != nil {
		return nil, err
	}
	return s.plants.ListByGarden(ctx, gardenID)
}

func (s *PlantService) Update(ctx context.Context, ownerID, id string, in ports.PlantInput) (*domain.Plant, error) {
	plant, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		plant.Name = in.Name
	}
	plant.Species = in.Species
	plant.Notes = in.Notes
	plant.PhotoURL = in.PhotoURL
	plant.UpdatedAt = time.Now().UTC()

	if err := s.plants.Update(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *PlantService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.plants.Delete(ctx, id)
}

func (s *PlantService) owned(ctx context.Context, ownerID, id string) (*domain.Plant, error) {
	plant, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plant.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return plant, nil
}

func (s *PlantService) ownGarden(ctx context.Context, ownerID, gardenID string) error {
	garden, err := s.gardens.FindByID(ctx, gardenID)
	if err != nil {
		return err
	}
	if garden.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
