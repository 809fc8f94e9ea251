package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestCampaignService() (*CampaignService, *fakeCampaignRepo, *fakeTemplateRepo) {
	campaignRepo := newFakeCampaignRepo()
	templateRepo := newFakeTemplateRepo()
	svc := NewCampaignService(campaignRepo, templateRepo, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, campaignRepo, templateRepo
}

func seedTemplate(t *testing.T, repo *fakeTemplateRepo, businessID primitive.ObjectID) *models.Template {
	t.Helper()
	template := &models.Template{
		BusinessID: businessID,
		Name:       "Promo",
		Content:    "Hi {{name}}, our sale is on!",
		Type:       "promotional",
	}
	require.NoError(t, repo.Create(context.Background(), template))
	return template
}

func TestCampaignService_CreateImmediate(t *testing.T) {
	svc, _, templateRepo := newTestCampaignService()
	businessID := primitive.NewObjectID()
	template := seedTemplate(t, templateRepo, businessID)

	campaign, err := svc.Create(context.Background(), businessID, models.CreateCampaignRequest{
		Name:         "Summer Promo",
		TemplateID:   template.ID.Hex(),
		ScheduleType: models.ScheduleTypeImmediate,
		TargetLeads:  []string{models.SegmentHot},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, models.CampaignStatusScheduled, campaign.Status)
	assert.Equal(t, testNow, campaign.ScheduledAt, "immediate campaigns are stored as scheduled-for-now")
	assert.Equal(t, template.Content, campaign.MessageContent)
	assert.Equal(t, "user-1", campaign.CreatedBy)
}

func TestCampaignService_CreateScheduled(t *testing.T) {
	svc, _, templateRepo := newTestCampaignService()
	businessID := primitive.NewObjectID()
	template := seedTemplate(t, templateRepo, businessID)
	at := testNow.Add(48 * time.Hour)

	campaign, err := svc.Create(context.Background(), businessID, models.CreateCampaignRequest{
		Name:         "Summer Promo",
		TemplateID:   template.ID.Hex(),
		ScheduleType: models.ScheduleTypeScheduled,
		ScheduledAt:  at,
		TargetLeads:  []string{models.SegmentWarm},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, at, campaign.ScheduledAt)
}

func TestCampaignService_CreateRecurringNormalizesCronToUTC(t *testing.T) {
	svc, _, templateRepo := newTestCampaignService()
	businessID := primitive.NewObjectID()
	template := seedTemplate(t, templateRepo, businessID)

	campaign, err := svc.Create(context.Background(), businessID, models.CreateCampaignRequest{
		Name:           "Daily Digest",
		TemplateID:     template.ID.Hex(),
		ScheduleType:   models.ScheduleTypeRecurring,
		CronExpression: "30 9 * * *",
		UTCOffsetHours: 1,
		TargetLeads:    []string{models.SegmentCold},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "30 8 * * *", campaign.CronExpression)
	// next 08:30 UTC after 2026-08-01 12:00 UTC
	assert.Equal(t, time.Date(2026, 8, 2, 8, 30, 0, 0, time.UTC), campaign.ScheduledAt)
}

func TestCampaignService_CreateInvalidRequest(t *testing.T) {
	svc, _, _ := newTestCampaignService()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), models.CreateCampaignRequest{
		Name:         "x",
		ScheduleType: models.ScheduleTypeImmediate,
	}, "user-1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "name")
	assert.Contains(t, validationErr.Errors, "template_id")
	assert.Contains(t, validationErr.Errors, "target_leads")
}

func TestCampaignService_CreateUnknownTemplate(t *testing.T) {
	svc, _, _ := newTestCampaignService()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), models.CreateCampaignRequest{
		Name:         "Summer Promo",
		TemplateID:   primitive.NewObjectID().Hex(),
		ScheduleType: models.ScheduleTypeImmediate,
		TargetLeads:  []string{models.SegmentHot},
	}, "user-1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Template not found", validationErr.Errors["template_id"])
}

func TestCampaignService_CreateMalformedTemplateID(t *testing.T) {
	svc, _, _ := newTestCampaignService()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), models.CreateCampaignRequest{
		Name:         "Summer Promo",
		TemplateID:   "not-an-object-id",
		ScheduleType: models.ScheduleTypeImmediate,
		TargetLeads:  []string{models.SegmentHot},
	}, "user-1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid template ID", validationErr.Errors["template_id"])
}

func TestCampaignService_Cancel(t *testing.T) {
	svc, campaignRepo, _ := newTestCampaignService()
	ctx := context.Background()

	scheduled := &models.Campaign{Status: models.CampaignStatusScheduled}
	require.NoError(t, campaignRepo.Create(ctx, scheduled))

	cancelled, err := svc.Cancel(ctx, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusCancelled, cancelled.Status)

	running := &models.Campaign{Status: models.CampaignStatusRunning}
	require.NoError(t, campaignRepo.Create(ctx, running))

	_, err = svc.Cancel(ctx, running.ID)
	assert.True(t, errors.Is(err, ErrNotCancellable))
}

func TestCampaignService_Stats(t *testing.T) {
	svc, campaignRepo, _ := newTestCampaignService()
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	for _, c := range []*models.Campaign{
		{BusinessID: businessID, Status: models.CampaignStatusCompleted, SentCount: 90, FailedCount: 10, TotalRecipients: 100},
		{BusinessID: businessID, Status: models.CampaignStatusScheduled},
		{BusinessID: businessID, Status: models.CampaignStatusRunning, SentCount: 10, TotalRecipients: 100},
		{BusinessID: primitive.NewObjectID(), Status: models.CampaignStatusCompleted, SentCount: 500, TotalRecipients: 500},
	} {
		require.NoError(t, campaignRepo.Create(ctx, c))
	}

	stats, err := svc.Stats(ctx, businessID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalCampaigns)
	assert.Equal(t, 2, stats.ActiveCampaigns)
	assert.Equal(t, 100, stats.TotalSent)
	assert.Equal(t, 10, stats.TotalFailed)
	assert.Equal(t, 50, stats.SuccessRate) // 100 sent of 200 recipients
}

func TestCampaignService_CreateFromGenerated(t *testing.T) {
	svc, _, templateRepo := newTestCampaignService()
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	generated := &models.GeneratedCampaign{
		Strategy: models.CampaignStrategy{TargetSegments: []string{"hot", "made_up", "warm"}},
		Templates: []models.GeneratedTemplate{
			{Message: "Hello {{name}}!", TemplateType: "promotional"},
		},
	}

	campaign, err := svc.CreateFromGenerated(ctx, businessID, generated, "Accepted Campaign", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Accepted Campaign", campaign.Name)
	assert.Equal(t, "Hello {{name}}!", campaign.MessageContent)
	assert.Equal(t, models.ScheduleTypeImmediate, campaign.ScheduleType)
	assert.Equal(t, []string{"hot", "warm"}, campaign.TargetLeads)

	// The backing template is created as part of accepting the draft.
	template, err := templateRepo.FindByID(ctx, campaign.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, template.Variables)
	assert.True(t, template.IsActive)
}

func TestCampaignService_CreateFromGeneratedBlankName(t *testing.T) {
	svc, _, _ := newTestCampaignService()

	_, err := svc.CreateFromGenerated(context.Background(), primitive.NewObjectID(), &models.GeneratedCampaign{
		Strategy: models.CampaignStrategy{TargetSegments: []string{"hot"}},
	}, "   ", "user-1")

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "campaign name", missing.Field)
}

func TestCampaignService_CreateFromGeneratedPastScheduleRejected(t *testing.T) {
	svc, campaignRepo, templateRepo := newTestCampaignService()
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	generated := &models.GeneratedCampaign{
		Strategy: models.CampaignStrategy{TargetSegments: []string{"hot"}},
		Schedule: []models.SendSchedule{{SendDatetime: "2020-01-01T09:00:00Z"}},
	}

	_, err := svc.CreateFromGenerated(ctx, businessID, generated, "Stale Plan", "user-1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "scheduled_at")

	// A rejected draft leaves nothing behind, neither the campaign nor
	// the template that was staged for it.
	templates, repoErr := templateRepo.FindByBusiness(ctx, businessID)
	require.NoError(t, repoErr)
	assert.Empty(t, templates)
	count, repoErr := campaignRepo.Count(ctx, businessID)
	require.NoError(t, repoErr)
	assert.Zero(t, count)
}
