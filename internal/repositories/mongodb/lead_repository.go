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

// LeadRepository implements the repositories.LeadRepository interface
type LeadRepository struct {
	collection *mongo.Collection
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *mongo.Database) repositories.LeadRepository {
	return &LeadRepository{
		collection: db.Collection("leads"),
	}
}

// Create creates a new lead
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lead.ID = oid
	}
	return nil
}

// CreateMany inserts a batch of leads, used by the CSV importer
func (r *LeadRepository) CreateMany(ctx context.Context, leads []*models.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(leads))
	now := time.Now()
	for _, lead := range leads {
		lead.CreatedAt = now
		lead.UpdatedAt = now
		docs = append(docs, lead)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID finds a lead by ID
func (r *LeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	var lead models.Lead
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		return nil, translateErr(err)
	}
	return &lead, nil
}

// FindByPhone finds a business's lead by phone number
func (r *LeadRepository) FindByPhone(ctx context.Context, businessID primitive.ObjectID, phone string) (*models.Lead, error) {
	var lead models.Lead
	err := r.collection.FindOne(ctx, bson.M{"businessId": businessID, "phone": phone}).Decode(&lead)
	if err != nil {
		return nil, translateErr(err)
	}
	return &lead, nil
}

// FindByBusiness finds leads for a business with pagination
func (r *LeadRepository) FindByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Lead, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	return leads, nil
}

// FindBySegments finds all leads of a business in any of the given segments
func (r *LeadRepository) FindBySegments(ctx context.Context, businessID primitive.ObjectID, segments []string) ([]*models.Lead, error) {
	filter := bson.M{
		"businessId": businessID,
		"segment":    bson.M{"$in": segments},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	return leads, nil
}

// CountBySegment counts a business's leads in a segment
func (r *LeadRepository) CountBySegment(ctx context.Context, businessID primitive.ObjectID, segment string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"businessId": businessID, "segment": segment})
}

// Update updates a lead
func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	lead.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	return err
}

// Delete deletes a lead
func (r *LeadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
