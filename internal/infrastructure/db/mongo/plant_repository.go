package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

const plantCollection = "plants"

type PlantRepository struct {
	coll *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{coll: db.Collection(plantCollection)}
}

type plantDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	GardenID  string             `bson:"garden_id"`
	Name      string             `bson:"name"`
	Species   string             `bson:"species,omitempty"`
	Notes     string             `bson:"notes,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d plantDoc) toDomain() domain.Plant {
	return domain.Plant{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		GardenID:  d.GardenID,
		Name:      d.Name,
		Species:   d.Species,
		Notes:     d.Notes,
		PhotoURL:  d.PhotoURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *PlantRepository) Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	doc := plantDoc{
		OwnerID:   plant.OwnerID,
		GardenID:  plant.GardenID,
		Name:      plant.Name,
		Species:   plant.Species,
		Notes:     plant.Notes,
		PhotoURL:  plant.PhotoURL,
		CreatedAt: plant.CreatedAt,
		UpdatedAt: plant.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert plant: %w", err)
	}

	created := *plant
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	var doc plantDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	plant := doc.toDomain()
	return &plant, nil
}

func (r *PlantRepository) ListByGarden(ctx context.Context, gardenID string) ([]domain.Plant, error) {
	cur, err := r.coll.Find(ctx, bson.M{"garden_id": gardenID})
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer cur.Close(ctx)

	plants := make([]domain.Plant, 0)
	for cur.Next(ctx) {
		var doc plantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode plant: %w", err)
		}
		plants = append(plants, doc.toDomain())
	}
	return plants, cur.Err()
}

func (r *PlantRepository) Update(ctx context.Context, plant *domain.Plant) error {
	oid, err := primitive.ObjectIDFromHex(plant.ID)
	if err != nil {
		return domain.ErrPlantNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":       plant.Name,
		"species":    plant.Species,
		"notes":      plant.Notes,
		"photo_url":  plant.PhotoURL,
		"updated_at": plant.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlantNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}
