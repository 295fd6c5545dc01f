package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

type stubGardenRepo struct {
	gardens map[string]*domain.Garden
	nextID  int
}

func newStubGardenRepo() *stubGardenRepo {
	return &stubGardenRepo{gardens: make(map[string]*domain.Garden)}
}

func (r *stubGardenRepo) Create(_ context.Context, garden *domain.Garden) (*domain.Garden, error) {
	r.nextID++
	clone := *garden
	clone.ID = fmt.Sprintf("garden_%d", r.nextID)
	r.gardens[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubGardenRepo) FindByID(_ context.Context, id string) (*domain.Garden, error) {
	if g, ok := r.gardens[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, domain.ErrGardenNotFound
}

func (r *stubGardenRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Garden, error) {
	var out []domain.Garden
	for _, g := range r.gardens {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubGardenRepo) Update(_ context.Context, garden *domain.Garden) error {
	if _, ok := r.gardens[garden.ID]; !ok {
		return domain.ErrGardenNotFound
	}
	clone := *garden
	r.gardens[garden.ID] = &clone
	return nil
}

func (r *stubGardenRepo) Delete(_ context.Context, id string) error {
	delete(r.gardens, id)
	return nil
}

type stubPlantRepo struct {
	plants map[string]*domain.Plant
	nextID int
}

func newStubPlantRepo() *stubPlantRepo {
	return &stubPlantRepo{plants: make(map[string]*domain.Plant)}
}

func (r *stubPlantRepo) Create(_ context.Context, plant *domain.Plant) (*domain.Plant, error) {
	r.nextID++
	clone := *plant
	clone.ID = fmt.Sprintf("plant_%d", r.nextID)
	r.plants[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubPlantRepo) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	if p, ok := r.plants[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPlantNotFound
}

func (r *stubPlantRepo) ListByGarden(_ context.Context, gardenID string) ([]domain.Plant, error) {
	var out []domain.Plant
	for _, p := range r.plants {
		if p.GardenID == gardenID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPlantRepo) Update(_ context.Context, plant *domain.Plant) error {
	if _, ok := r.plants[plant.ID]; !ok {
		return domain.ErrPlantNotFound
	}
	clone := *plant
	r.plants[plant.ID] = &clone
	return nil
}

func (r *stubPlantRepo) Delete(_ context.Context, id string) error {
	delete(r.plants, id)
	return nil
}

func TestGardenService_CreateAndList(t *testing.T) {
	svc := NewGardenService(newStubGardenRepo())

	created, err := svc.Create(context.Background(), "owner1", ports.GardenInput{Name: "Balcony", Location: "East side"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.OwnerID != "owner1" {
		t.Fatalf("unexpected garden: %+v", created)
	}

	mine, err := svc.List(context.Background(), "owner1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 garden, got %v (%v)", mine, err)
	}
	theirs, err := svc.List(context.Background(), "owner2")
	if err != nil || len(theirs) != 0 {
		t.Fatalf("expected no gardens for other owner, got %v (%v)", theirs, err)
	}
}

func TestGardenService_Create_RequiresName(t *testing.T) {
	svc := NewGardenService(newStubGardenRepo())

	_, err := svc.Create(context.Background(), "owner1", ports.GardenInput{})
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindValidation || de.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestGardenService_OwnershipEnforced(t *testing.T) {
	repo := newStubGardenRepo()
	svc := NewGardenService(repo)

	created, err := svc.Create(context.Background(), "owner1", ports.GardenInput{Name: "Patio"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "owner2", created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden get, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "owner2", created.ID, ports.GardenInput{Name: "Stolen"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "owner2", created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}

	// The rightful owner still sees the original.
	got, err := svc.Get(context.Background(), "owner1", created.ID)
	if err != nil || got.Name != "Patio" {
		t.Fatalf("owner lost access: %v (%+v)", err, got)
	}
}

func TestGardenService_UpdateKeepsNameWhenOmitted(t *testing.T) {
	svc := NewGardenService(newStubGardenRepo())

	created, err := svc.Create(context.Background(), "owner1", ports.GardenInput{Name: "Greenhouse", Description: "warm"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "owner1", created.ID, ports.GardenInput{Description: "humid"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Greenhouse" || updated.Description != "humid" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestPlantService_CreateChecksGardenOwnership(t *testing.T) {
	gardens := newStubGardenRepo()
	plants := newStubPlantRepo()
	gardenSvc := NewGardenService(gardens)
	svc := NewPlantService(plants, gardens)

	garden, err := gardenSvc.Create(context.Background(), "owner1", ports.GardenInput{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("create garden: %v", err)
	}

	if _, err := svc.Create(context.Background(), "owner2", ports.PlantInput{GardenID: garden.ID, Name: "Basil"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	plant, err := svc.Create(context.Background(), "owner1", ports.PlantInput{GardenID: garden.ID, Name: "Basil", Species: "Ocimum basilicum"})
	if err != nil {
		t.Fatalf("create plant: %v", err)
	}
	if plant.OwnerID != "owner1" || plant.GardenID != garden.ID {
		t.Fatalf("unexpected plant: %+v", plant)
	}
}

func TestPlantService_ListByGarden(t *testing.T) {
	gardens := newStubGardenRepo()
	plants := newStubPlantRepo()
	gardenSvc := NewGardenService(gardens)
	svc := NewPlantService(plants, gardens)

	garden, err := gardenSvc.Create(context.Background(), "owner1", ports.GardenInput{Name: "Office"})
	if err != nil {
		t.Fatalf("create garden: %v", err)
	}
	for _, name := range []string{"Pothos", "Monstera"} {
		if _, err := svc.Create(context.Background(), "owner1", ports.PlantInput{GardenID: garden.ID, Name: name}); err != nil {
			t.Fatalf("create plant %s: %v", name, err)
		}
	}

	listed, err := svc.ListByGarden(context.Background(), "owner1", garden.ID)
	if err != nil || len(listed) != 2 {
		t.Fatalf("expected 2 plants, got %v (%v)", listed, err)
	}

	if _, err := svc.ListByGarden(context.Background(), "owner2", garden.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden list for non-owner, got %v", err)
	}

	if _, err := svc.ListByGarden(context.Background(), "owner1", "missing"); !errors.Is(err, domain.ErrGardenNotFound) {
		t.Fatalf("expected garden not found, got %v", err)
	}
}
