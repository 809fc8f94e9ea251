package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campaignhq/campaign-backend/internal/config"
	"github.com/campaignhq/campaign-backend/internal/models"
	mongorepo "github.com/campaignhq/campaign-backend/internal/repositories/mongodb"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/campaignhq/campaign-backend/pkg/mongodb"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker polls for due campaigns and executes them. It is the only
// process that moves campaigns through running to a terminal status, so
// the API and worker can be scaled and restarted independently.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	campaignRepo := mongorepo.NewCampaignRepository(db)
	leadRepo := mongorepo.NewLeadRepository(db)
	optOutRepo := mongorepo.NewOptOutRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db, models.MessagingSettings{
		MockGateway:    cfg.WhatsApp.MockGateway,
		SendRatePerSec: cfg.Worker.SendRatePerSec,
	})
	conversationRepo := mongorepo.NewConversationRepository(db)

	gateway := whatsapp.NewCloudGateway(cfg.WhatsApp.BaseURL, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken)
	executor := services.NewCampaignExecutor(campaignRepo, leadRepo, optOutRepo, settingsRepo, conversationRepo, gateway, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.Worker.PollInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Campaign worker started", zap.Duration("poll_interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Campaign worker stopping")
			return
		case <-ticker.C:
			if err := executor.RunDue(ctx); err != nil {
				logger.Error("Failed to run due campaigns", zap.Error(err))
			}
		}
	}
}
