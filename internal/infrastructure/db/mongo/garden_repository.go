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

const gardenCollection = "gardens"

type GardenRepository struct {
	coll *mongo.Collection
}

func NewGardenRepository(db *mongo.Database) *GardenRepository {
	return &GardenRepository{coll: db.Collection(gardenCollection)}
}

type gardenDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d gardenDoc) toDomain() domain.Garden {
	return domain.Garden{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Location:    d.Location,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *GardenRepository) Create(ctx context.Context, garden *domain.Garden) (*domain.Garden, error) {
	doc := gardenDoc{
		OwnerID:     garden.OwnerID,
		Name:        garden.Name,
		Description: garden.Description,
		Location:    garden.Location,
		CreatedAt:   garden.CreatedAt,
		UpdatedAt:   garden.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert garden: %w", err)
	}

	created := *garden
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *GardenRepository) FindByID(ctx context.Context, id string) (*domain.Garden, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGardenNotFound
	}

	var doc gardenDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGardenNotFound
		}
		return nil, fmt.Errorf("find garden: %w", err)
	}
	garden := doc.toDomain()
	return &garden, nil
}

func (r *GardenRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Garden, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list gardens: %w", err)
	}
	defer cur.Close(ctx)

	gardens := make([]domain.Garden, 0)
	for cur.Next(ctx) {
		var doc gardenDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode garden: %w", err)
		}
		gardens = append(gardens, doc.toDomain())
	}
	return gardens, cur.Err()
}

func (r *GardenRepository) Update(ctx context.Context, garden *domain.Garden) error {
	oid, err := primitive.ObjectIDFromHex(garden.ID)
	if err != nil {
		return domain.ErrGardenNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        garden.Name,
		"description": garden.Description,
		"location":    garden.Location,
		"updated_at":  garden.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update garden: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGardenNotFound
	}
	return nil
}

func (r *GardenRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGardenNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete garden: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGardenNotFound
	}
	return nil
}
