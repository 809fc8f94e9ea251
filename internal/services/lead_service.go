package services

import (
	"context"
	"io"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadService handles lead operations
type LeadService struct {
	leadRepo repositories.LeadRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo repositories.LeadRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// Create creates a lead under a business
func (s *LeadService) Create(ctx context.Context, lead *models.Lead, businessID primitive.ObjectID) (*models.Lead, error) {
	lead.BusinessID = businessID
	if lead.Segment == "" {
		lead.Segment = models.SegmentCold
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	return s.leadRepo.FindByID(ctx, id)
}

// GetByBusiness lists leads for a business with pagination
func (s *LeadService) GetByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Lead, error) {
	return s.leadRepo.FindByBusiness(ctx, businessID, page, limit)
}

// Update updates a lead
func (s *LeadService) Update(ctx context.Context, lead *models.Lead) error {
	return s.leadRepo.Update(ctx, lead)
}

// Delete deletes a lead
func (s *LeadService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.leadRepo.Delete(ctx, id)
}

// ImportCSV bulk-imports leads from a CSV stream under a business
func (s *LeadService) ImportCSV(ctx context.Context, businessID primitive.ObjectID, r io.Reader) (*utils.LeadImportResult, error) {
	leads, result, err := utils.ParseLeadsCSV(r)
	if err != nil {
		return nil, err
	}
	for _, lead := range leads {
		lead.BusinessID = businessID
	}
	if err := s.leadRepo.CreateMany(ctx, leads); err != nil {
		return nil, err
	}
	return result, nil
}

// SegmentStats returns per-segment lead counts for a business
func (s *LeadService) SegmentStats(ctx context.Context, businessID primitive.ObjectID) (*models.SegmentStats, error) {
	stats := &models.SegmentStats{}
	for _, segment := range []string{models.SegmentHot, models.SegmentWarm, models.SegmentCold} {
		count, err := s.leadRepo.CountBySegment(ctx, businessID, segment)
		if err != nil {
			return nil, err
		}
		switch segment {
		case models.SegmentHot:
			stats.Hot = count
		case models.SegmentWarm:
			stats.Warm = count
		case models.SegmentCold:
			stats.Cold = count
		}
		stats.Total += count
	}
	return stats, nil
}
