package mongodb

import (
	"context"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BusinessRepository implements the repositories.BusinessRepository interface
type BusinessRepository struct {
	collection *mongo.Collection
}

// NewBusinessRepository creates a new BusinessRepository
func NewBusinessRepository(db *mongo.Database) repositories.BusinessRepository {
	return &BusinessRepository{
		collection: db.Collection("businesses"),
	}
}

// Create creates a new business
func (r *BusinessRepository) Create(ctx context.Context, business *models.Business) error {
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		business.ID = oid
	}
	return nil
}

// FindByID finds a business by ID
func (r *BusinessRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	var business models.Business
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&business)
	if err != nil {
		return nil, translateErr(err)
	}
	return &business, nil
}

// FindByOwner finds all businesses owned by a user
func (r *BusinessRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Business, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var businesses []*models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, err
	}
	if businesses == nil {
		businesses = []*models.Business{}
	}
	return businesses, nil
}

// Update updates a business
func (r *BusinessRepository) Update(ctx context.Context, business *models.Business) error {
	business.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": business.ID}, business)
	return err
}

// Delete deletes a business
func (r *BusinessRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
