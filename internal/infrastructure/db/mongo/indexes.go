package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Safe to call
// on every startup; Mongo treats identical definitions as no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// Users: phone is the durable identity; username is unique when set.
	_, err := db.Collection(userCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	// OTPs: one live code per (phone, purpose); expires_at doubles as a
	// store-level TTL so stale codes vanish even if never verified.
	_, err = db.Collection(otpCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}, {Key: "purpose", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("otp indexes: %w", err)
	}

	_, err = db.Collection(gardenCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("garden indexes: %w", err)
	}

	_, err = db.Collection(plantCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "garden_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("plant indexes: %w", err)
	}

	return nil
}
