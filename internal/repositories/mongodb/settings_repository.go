package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsRepository implements the repositories.SettingsRepository interface
type SettingsRepository struct {
	collection *mongo.Collection
	defaults   models.MessagingSettings
}

// NewSettingsRepository creates a new SettingsRepository. defaults is served
// until an operator stores a settings document, and comes from configuration.
func NewSettingsRepository(db *mongo.Database, defaults models.MessagingSettings) repositories.SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection("settings"),
		defaults:   defaults,
	}
}

// Get returns the messaging settings document, falling back to the
// configured defaults when none has been stored yet
func (r *SettingsRepository) Get(ctx context.Context) (*models.MessagingSettings, error) {
	var settings models.MessagingSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			defaults := r.defaults
			return &defaults, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Update upserts the messaging settings document
func (r *SettingsRepository) Update(ctx context.Context, settings *models.MessagingSettings) error {
	settings.UpdatedAt = time.Now()
	filter := bson.M{}
	if !settings.ID.IsZero() {
		filter = bson.M{"_id": settings.ID}
	}
	update := bson.M{"$set": bson.M{
		"defaultSenderId": settings.DefaultSenderID,
		"mockGateway":     settings.MockGateway,
		"sendRatePerSec":  settings.SendRatePerSec,
		"updatedAt":       settings.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
