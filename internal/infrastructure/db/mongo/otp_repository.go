package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

const otpCollection = "otps"

// OTPRepository stores one-time codes. A unique (phone, purpose) index
// backs the one-live-code invariant and a TTL index on expires_at provides
// passive cleanup alongside the verifier's active expiry check.
type OTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{coll: db.Collection(otpCollection)}
}

type otpDoc struct {
	Phone     string    `bson:"phone"`
	Code      string    `bson:"code"`
	Purpose   string    `bson:"purpose"`
	ExpiresAt time.Time `bson:"expires_at"`
	Attempts  int       `bson:"attempts"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *OTPRepository) Replace(ctx context.Context, code *domain.OneTimeCode) error {
	filter := bson.M{"phone": code.Phone, "purpose": string(code.Purpose)}
	doc := otpDoc{
		Phone:     code.Phone,
		Code:      code.Code,
		Purpose:   string(code.Purpose),
		ExpiresAt: code.ExpiresAt,
		Attempts:  code.Attempts,
		CreatedAt: code.CreatedAt,
	}

	_, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) Find(ctx context.Context, phone string, purpose domain.OTPPurpose) (*domain.OneTimeCode, error) {
	var doc otpDoc
	err := r.coll.FindOne(ctx, bson.M{"phone": phone, "purpose": string(purpose)}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}

	return &domain.OneTimeCode{
		Phone:     doc.Phone,
		Code:      doc.Code,
		Purpose:   domain.OTPPurpose(doc.Purpose),
		ExpiresAt: doc.ExpiresAt,
		Attempts:  doc.Attempts,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, phone string, purpose domain.OTPPurpose) (int, error) {
	filter := bson.M{"phone": phone, "purpose": string(purpose)}
	update := bson.M{"$inc": bson.M{"attempts": 1}}

	var doc otpDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, domain.ErrCodeNotFound
		}
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return doc.Attempts, nil
}

func (r *OTPRepository) Delete(ctx context.Context, phone string, purpose domain.OTPPurpose) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"phone": phone, "purpose": string(purpose)})
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}
