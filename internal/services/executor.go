package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/observability"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// CampaignExecutor runs campaigns: it resolves target leads by segment,
// filters the suppression list, sends through the WhatsApp gateway and
// maintains the campaign counters and status.
type CampaignExecutor struct {
	campaignRepo     repositories.CampaignRepository
	leadRepo         repositories.LeadRepository
	optOutRepo       repositories.OptOutRepository
	settingsRepo     repositories.SettingsRepository
	conversationRepo repositories.ConversationRepository
	gateway          whatsapp.Gateway
	mockGateway      whatsapp.Gateway
	logger           *zap.Logger
}

// NewCampaignExecutor creates a new CampaignExecutor. gateway is the real
// WhatsApp client; the mock is substituted when settings enable mock mode.
func NewCampaignExecutor(
	campaignRepo repositories.CampaignRepository,
	leadRepo repositories.LeadRepository,
	optOutRepo repositories.OptOutRepository,
	settingsRepo repositories.SettingsRepository,
	conversationRepo repositories.ConversationRepository,
	gateway whatsapp.Gateway,
	logger *zap.Logger,
) *CampaignExecutor {
	return &CampaignExecutor{
		campaignRepo:     campaignRepo,
		leadRepo:         leadRepo,
		optOutRepo:       optOutRepo,
		settingsRepo:     settingsRepo,
		conversationRepo: conversationRepo,
		gateway:          gateway,
		mockGateway:      whatsapp.NewMockGateway(),
		logger:           logger,
	}
}

// Execute runs a single campaign to completion. Only scheduled campaigns
// can be executed; the status moves to running for the duration and ends
// completed, or failed when not a single message went out.
func (e *CampaignExecutor) Execute(ctx context.Context, campaignID primitive.ObjectID) error {
	campaign, err := e.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign.Status != models.CampaignStatusScheduled {
		return fmt.Errorf("campaign %s is %s, not scheduled", campaignID.Hex(), campaign.Status)
	}

	settings, err := e.settingsRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load messaging settings: %w", err)
	}
	gateway := e.gateway
	if settings.MockGateway {
		gateway = e.mockGateway
	}

	leads, err := e.leadRepo.FindBySegments(ctx, campaign.BusinessID, campaign.TargetLeads)
	if err != nil {
		return err
	}

	start := time.Now()
	campaign.Status = models.CampaignStatusRunning
	campaign.StartedAt = start
	if err := e.campaignRepo.Update(ctx, campaign); err != nil {
		return err
	}

	ratePerSec := settings.SendRatePerSec
	if ratePerSec <= 0 {
		ratePerSec = 10
	}
	limiter := rate.NewLimiter(rate.Limit(ratePerSec), 1)

	var sent, failed, skipped int
	for _, lead := range leads {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		optedOut, err := e.optOutRepo.IsOptedOut(ctx, lead.Phone)
		if err != nil {
			e.logger.Warn("opt-out lookup failed, skipping lead",
				zap.String("phone", lead.Phone), zap.Error(err))
			skipped++
			continue
		}
		if optedOut {
			skipped++
			observability.MessagesSent.WithLabelValues("skipped").Inc()
			continue
		}

		content := Render(campaign.MessageContent, lead)
		messageID, err := gateway.SendMessage(ctx, lead.Phone, content)
		if err != nil {
			failed++
			observability.MessagesSent.WithLabelValues("failed").Inc()
			e.logger.Warn("send failed",
				zap.String("campaign_id", campaignID.Hex()),
				zap.String("phone", lead.Phone),
				zap.Error(err))
			continue
		}

		sent++
		observability.MessagesSent.WithLabelValues("sent").Inc()
		e.recordOutbound(ctx, campaign, lead, content, messageID)
	}

	// Suppressed recipients were never deliverable, keep them out of the
	// progress denominator. All three counters accumulate so the progress
	// of a recurring campaign stays within 0-100 across runs.
	delivered := len(leads) - skipped
	if err := e.campaignRepo.IncrementCounters(ctx, campaignID, sent, failed, delivered); err != nil {
		return err
	}
	campaign.TotalRecipients += delivered
	campaign.SentCount += sent
	campaign.FailedCount += failed
	campaign.CompletedAt = time.Now()

	switch {
	case campaign.ScheduleType == models.ScheduleTypeRecurring:
		// A recurring campaign goes back to scheduled with its next fire time.
		next, err := nextCronFire(campaign.CronExpression, time.Now())
		if err != nil {
			campaign.Status = models.CampaignStatusFailed
		} else {
			campaign.Status = models.CampaignStatusScheduled
			campaign.ScheduledAt = next
		}
	case sent == 0 && failed > 0:
		campaign.Status = models.CampaignStatusFailed
	default:
		campaign.Status = models.CampaignStatusCompleted
	}

	if err := e.campaignRepo.Update(ctx, campaign); err != nil {
		return err
	}

	observability.CampaignsExecuted.WithLabelValues(campaign.Status).Inc()
	observability.CampaignDuration.Observe(time.Since(start).Seconds())
	e.logger.Info("campaign executed",
		zap.String("campaign_id", campaignID.Hex()),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
		zap.String("status", campaign.Status),
	)
	return nil
}

// RunDue executes every scheduled campaign whose fire time has passed
func (e *CampaignExecutor) RunDue(ctx context.Context) error {
	due, err := e.campaignRepo.FindDueScheduled(ctx, time.Now())
	if err != nil {
		return err
	}
	for _, campaign := range due {
		if err := e.Execute(ctx, campaign.ID); err != nil {
			e.logger.Error("campaign execution failed",
				zap.String("campaign_id", campaign.ID.Hex()),
				zap.Error(err))
		}
	}
	return nil
}

func (e *CampaignExecutor) recordOutbound(ctx context.Context, campaign *models.Campaign, lead *models.Lead, content, messageID string) {
	conversation, err := e.conversationRepo.FindOrCreate(ctx, campaign.BusinessID, lead.ID, lead.Phone)
	if err != nil {
		e.logger.Warn("failed to open conversation for campaign send",
			zap.String("lead_id", lead.ID.Hex()), zap.Error(err))
		return
	}
	message := &models.ConversationMessage{
		ConversationID: conversation.ID,
		Direction:      models.MessageOutbound,
		Content:        content,
		Status:         models.MessageStatusSent,
		WAMessageID:    messageID,
		CampaignID:     campaign.ID,
	}
	if err := e.conversationRepo.AppendMessage(ctx, message); err != nil {
		e.logger.Warn("failed to record outbound message", zap.Error(err))
	}
}
