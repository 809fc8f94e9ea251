package services

import (
	"context"
	"testing"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type executorFixture struct {
	executor         *CampaignExecutor
	campaignRepo     *fakeCampaignRepo
	leadRepo         *fakeLeadRepo
	optOutRepo       *fakeOptOutRepo
	settingsRepo     *fakeSettingsRepo
	conversationRepo *fakeConversationRepo
	mock             *whatsapp.MockGateway
}

func newExecutorFixture() *executorFixture {
	f := &executorFixture{
		campaignRepo:     newFakeCampaignRepo(),
		leadRepo:         &fakeLeadRepo{},
		optOutRepo:       newFakeOptOutRepo(),
		settingsRepo:     &fakeSettingsRepo{settings: models.MessagingSettings{MockGateway: true, SendRatePerSec: 1000}},
		conversationRepo: newFakeConversationRepo(),
		mock:             whatsapp.NewMockGateway(),
	}
	f.executor = NewCampaignExecutor(
		f.campaignRepo, f.leadRepo, f.optOutRepo, f.settingsRepo, f.conversationRepo,
		whatsapp.NewMockGateway(), zap.NewNop(),
	)
	// settings enable mock mode, so sends land on this gateway
	f.executor.mockGateway = f.mock
	return f
}

func (f *executorFixture) seedLead(businessID primitive.ObjectID, phone, segment string) *models.Lead {
	lead := &models.Lead{BusinessID: businessID, Name: phone, Phone: phone, Segment: segment}
	_ = f.leadRepo.Create(context.Background(), lead)
	return lead
}

func (f *executorFixture) seedCampaign(businessID primitive.ObjectID, segments []string) *models.Campaign {
	campaign := &models.Campaign{
		BusinessID:     businessID,
		Name:           "Summer Promo",
		MessageContent: "Hi {{name}}!",
		ScheduleType:   models.ScheduleTypeImmediate,
		ScheduledAt:    time.Now().Add(-time.Minute),
		TargetLeads:    segments,
		Status:         models.CampaignStatusScheduled,
	}
	_ = f.campaignRepo.Create(context.Background(), campaign)
	return campaign
}

func TestExecutor_ExecuteHappyPath(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	f.seedLead(businessID, "2348010000002", models.SegmentHot)
	f.seedLead(businessID, "2348010000003", models.SegmentCold) // not targeted
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusCompleted, stored.Status)
	assert.Equal(t, 2, stored.TotalRecipients)
	assert.Equal(t, 2, stored.SentCount)
	assert.Equal(t, 0, stored.FailedCount)
	assert.Len(t, f.mock.Sent, 2)
	assert.Equal(t, "Hi 2348010000001!", f.mock.Sent[0].Message)
	// every delivery lands in a conversation thread
	assert.Len(t, f.conversationRepo.messages, 2)
}

func TestExecutor_ExecuteSkipsOptedOut(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	f.seedLead(businessID, "2348010000002", models.SegmentHot)
	require.NoError(t, f.optOutRepo.Add(context.Background(), "2348010000002", "STOP reply"))
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, _ := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	// suppressed numbers never count against progress
	assert.Equal(t, 1, stored.TotalRecipients)
	assert.Equal(t, 1, stored.SentCount)
	assert.Equal(t, 100, stored.Progress())
	assert.Len(t, f.mock.Sent, 1)
}

func TestExecutor_ExecuteAllFailuresMarksFailed(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	f.mock.FailFor["2348010000001"] = true
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, _ := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, models.CampaignStatusFailed, stored.Status)
	assert.Equal(t, 0, stored.SentCount)
	assert.Equal(t, 1, stored.FailedCount)
}

func TestExecutor_ExecutePartialFailureStillCompletes(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	f.seedLead(businessID, "2348010000002", models.SegmentHot)
	f.mock.FailFor["2348010000002"] = true
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, _ := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, models.CampaignStatusCompleted, stored.Status)
	assert.Equal(t, 1, stored.SentCount)
	assert.Equal(t, 1, stored.FailedCount)
}

func TestExecutor_ExecuteNoRecipientsCompletes(t *testing.T) {
	f := newExecutorFixture()
	campaign := f.seedCampaign(primitive.NewObjectID(), []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, _ := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, models.CampaignStatusCompleted, stored.Status)
	assert.Equal(t, 0, stored.TotalRecipients)
	assert.Equal(t, 0, stored.Progress())
}

func TestExecutor_ExecuteRejectsNonScheduled(t *testing.T) {
	f := newExecutorFixture()
	campaign := f.seedCampaign(primitive.NewObjectID(), []string{models.SegmentHot})
	campaign.Status = models.CampaignStatusCompleted

	err := f.executor.Execute(context.Background(), campaign.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not scheduled")
}

func TestExecutor_RecurringReturnsToScheduled(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})
	campaign.ScheduleType = models.ScheduleTypeRecurring
	campaign.CronExpression = "30 9 * * *"

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, _ := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	assert.Equal(t, models.CampaignStatusScheduled, stored.Status)
	assert.True(t, stored.ScheduledAt.After(time.Now()), "next fire time is in the future")
	assert.Equal(t, 1, stored.SentCount, "counters accumulate across runs")
}

func TestExecutor_RecurringProgressStaysBoundedAcrossRuns(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})
	campaign.ScheduleType = models.ScheduleTypeRecurring
	campaign.CronExpression = "30 9 * * *"

	// A recurring campaign ends each run back in scheduled, so it can be
	// executed again straight away.
	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))
	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	stored, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SentCount)
	assert.Equal(t, 2, stored.TotalRecipients, "the denominator grows with every run")
	assert.Equal(t, 100, stored.Progress())
}

func TestExecutor_RunDueExecutesOnlyDueCampaigns(t *testing.T) {
	f := newExecutorFixture()
	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)

	due := f.seedCampaign(businessID, []string{models.SegmentHot})
	notDue := f.seedCampaign(businessID, []string{models.SegmentHot})
	notDue.ScheduledAt = time.Now().Add(time.Hour)

	require.NoError(t, f.executor.RunDue(context.Background()))

	stored, _ := f.campaignRepo.FindByID(context.Background(), due.ID)
	assert.Equal(t, models.CampaignStatusCompleted, stored.Status)

	untouched, _ := f.campaignRepo.FindByID(context.Background(), notDue.ID)
	assert.Equal(t, models.CampaignStatusScheduled, untouched.Status)
	assert.Equal(t, 0, untouched.SentCount)
}

func TestExecutor_RealGatewayUsedWhenMockDisabled(t *testing.T) {
	f := newExecutorFixture()
	f.settingsRepo.settings.MockGateway = false
	real := whatsapp.NewMockGateway()
	f.executor.gateway = real

	businessID := primitive.NewObjectID()
	f.seedLead(businessID, "2348010000001", models.SegmentHot)
	campaign := f.seedCampaign(businessID, []string{models.SegmentHot})

	require.NoError(t, f.executor.Execute(context.Background(), campaign.ID))

	assert.Len(t, real.Sent, 1)
	assert.Empty(t, f.mock.Sent)
}
