package mongodb

import (
	"context"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OptOutRepository implements the repositories.OptOutRepository interface
type OptOutRepository struct {
	collection *mongo.Collection
}

// NewOptOutRepository creates a new OptOutRepository
func NewOptOutRepository(db *mongo.Database) repositories.OptOutRepository {
	return &OptOutRepository{
		collection: db.Collection("optouts"),
	}
}

// Add upserts a phone number onto the suppression list
func (r *OptOutRepository) Add(ctx context.Context, phone, reason string) error {
	filter := bson.M{"phone": phone}
	update := bson.M{
		"$set": bson.M{"reason": reason},
		"$setOnInsert": bson.M{
			"phone":     phone,
			"createdAt": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Remove deletes a phone number from the suppression list
func (r *OptOutRepository) Remove(ctx context.Context, phone string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"phone": phone})
	return err
}

// IsOptedOut reports whether a phone number is suppressed
func (r *OptOutRepository) IsOptedOut(ctx context.Context, phone string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"phone": phone})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lists the full suppression list
func (r *OptOutRepository) FindAll(ctx context.Context) ([]*models.OptOutEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.OptOutEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.OptOutEntry{}
	}
	return entries, nil
}
