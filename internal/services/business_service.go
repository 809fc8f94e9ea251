package services

import (
	"context"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessService handles business account operations
type BusinessService struct {
	businessRepo repositories.BusinessRepository
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo repositories.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// Create creates a business owned by the given user
func (s *BusinessService) Create(ctx context.Context, business *models.Business, ownerID primitive.ObjectID) (*models.Business, error) {
	business.OwnerID = ownerID
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// GetByID retrieves a business by ID
func (s *BusinessService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	return s.businessRepo.FindByID(ctx, id)
}

// GetByOwner lists the businesses owned by a user
func (s *BusinessService) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Business, error) {
	return s.businessRepo.FindByOwner(ctx, ownerID)
}

// Update updates a business
func (s *BusinessService) Update(ctx context.Context, business *models.Business) error {
	return s.businessRepo.Update(ctx, business)
}

// Delete deletes a business
func (s *BusinessService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.businessRepo.Delete(ctx, id)
}
