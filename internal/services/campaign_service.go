package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/internal/validation"
	"github.com/campaignhq/campaign-backend/pkg/cronutil"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrNotCancellable is returned when cancelling a running or finished campaign
var ErrNotCancellable = errors.New("campaign can no longer be cancelled")

// ValidationError carries the per-field error map of a rejected campaign
// payload. Handlers render it as a 400 with inline field messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campaign validation failed: %d field(s)", len(e.Errors))
}

// CampaignService handles campaign creation and lifecycle
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
	templateRepo repositories.TemplateRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaignRepo repositories.CampaignRepository, templateRepo repositories.TemplateRepository, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		templateRepo: templateRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create validates a campaign request, normalizes its schedule to UTC and
// persists it. Recurring cron expressions arrive in the caller's local time
// and are stored in UTC; scheduled_at is stored as given (it is already an
// absolute instant). The stored campaign's ScheduledAt doubles as the next
// fire time the executor polls on, so immediate campaigns are stored as
// scheduled-for-now.
func (s *CampaignService) Create(ctx context.Context, businessID primitive.ObjectID, req models.CreateCampaignRequest, createdBy string) (*models.Campaign, error) {
	now := s.now()

	if res := validation.ValidateCreateCampaign(req, now); !res.Valid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		return nil, &ValidationError{Errors: map[string]string{"template_id": "Invalid template ID"}}
	}
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ValidationError{Errors: map[string]string{"template_id": "Template not found"}}
		}
		return nil, err
	}

	utcCron := req.CronExpression
	if req.ScheduleType == models.ScheduleTypeRecurring {
		utcCron, err = cronutil.ToUTC(req.CronExpression, req.UTCOffsetHours)
		if err != nil {
			return nil, err
		}
	}

	schedule, err := models.ParseSchedule(req.ScheduleType, req.ScheduledAt, utcCron, now)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		BusinessID:     businessID,
		Name:           req.Name,
		TemplateID:     template.ID,
		MessageContent: template.Content,
		ScheduleType:   schedule.Type(),
		TargetLeads:    req.TargetLeads,
		Status:         models.CampaignStatusScheduled,
		CreatedBy:      createdBy,
	}

	switch sched := schedule.(type) {
	case models.ImmediateSchedule:
		campaign.ScheduledAt = now
	case models.ScheduledSchedule:
		campaign.ScheduledAt = sched.At
	case models.RecurringSchedule:
		campaign.CronExpression = sched.Cron
		next, err := nextCronFire(sched.Cron, now)
		if err != nil {
			return nil, err
		}
		campaign.ScheduledAt = next
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.Info("campaign created",
		zap.String("campaign_id", campaign.ID.Hex()),
		zap.String("schedule_type", campaign.ScheduleType),
		zap.Time("scheduled_at", campaign.ScheduledAt),
	)
	return campaign, nil
}

// CreateFromGenerated reduces an AI-generated strategy to a draft, creates
// the backing template and persists the campaign through the normal create
// path so all schedule rules apply.
func (s *CampaignService) CreateFromGenerated(ctx context.Context, businessID primitive.ObjectID, generated *models.GeneratedCampaign, chosenName, createdBy string) (*models.Campaign, error) {
	draft, err := MapGeneratedToDraft(businessID, generated, chosenName)
	if err != nil {
		return nil, err
	}

	template := &models.Template{
		BusinessID: businessID,
		Name:       draft.Name,
		Content:    draft.MessageContent,
		Type:       draft.TemplateType,
		Variables:  ExtractVariables(draft.MessageContent),
		IsActive:   true,
		CreatedBy:  createdBy,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	req := models.CreateCampaignRequest{
		Name:         draft.Name,
		TemplateID:   template.ID.Hex(),
		ScheduleType: draft.ScheduleType,
		ScheduledAt:  draft.ScheduledAt,
		TargetLeads:  draft.TargetLeads,
	}
	campaign, err := s.Create(ctx, businessID, req, createdBy)
	if err != nil {
		// A rejected draft must not leave its backing template behind.
		if delErr := s.templateRepo.Delete(ctx, template.ID); delErr != nil {
			s.logger.Warn("failed to remove template of rejected draft",
				zap.String("template_id", template.ID.Hex()),
				zap.Error(delErr))
		}
		return nil, err
	}
	return campaign, nil
}

// GetByID retrieves a campaign by ID
func (s *CampaignService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaignRepo.FindByID(ctx, id)
}

// GetByBusiness lists a business's campaigns with pagination
func (s *CampaignService) GetByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]models.Campaign, error) {
	return s.campaignRepo.FindByBusiness(ctx, businessID, page, limit)
}

// Cancel cancels a campaign that has not started running yet
func (s *CampaignService) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !campaign.IsCancellable() {
		return nil, ErrNotCancellable
	}
	if err := s.campaignRepo.UpdateStatus(ctx, id, models.CampaignStatusCancelled); err != nil {
		return nil, err
	}
	campaign.Status = models.CampaignStatusCancelled
	return campaign, nil
}

// Stats aggregates campaign metrics for a business dashboard
func (s *CampaignService) Stats(ctx context.Context, businessID primitive.ObjectID) (*models.CampaignStats, error) {
	campaigns, err := s.campaignRepo.FindByBusiness(ctx, businessID, 1, 500)
	if err != nil {
		return nil, err
	}

	stats := &models.CampaignStats{
		TotalCampaigns: len(campaigns),
		SuccessRate:    models.SuccessRate(campaigns),
	}
	for i := range campaigns {
		stats.TotalSent += campaigns[i].SentCount
		stats.TotalFailed += campaigns[i].FailedCount
		switch campaigns[i].Status {
		case models.CampaignStatusScheduled, models.CampaignStatusRunning:
			stats.ActiveCampaigns++
		}
	}
	return stats, nil
}

// nextCronFire computes the next UTC fire time of a 5-field cron expression
func nextCronFire(expr string, now time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule.Next(now.UTC()), nil
}
