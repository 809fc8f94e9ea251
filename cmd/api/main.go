package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campaignhq/campaign-backend/api/routes"
	"github.com/campaignhq/campaign-backend/internal/config"
	"github.com/campaignhq/campaign-backend/internal/handlers"
	"github.com/campaignhq/campaign-backend/internal/models"
	mongorepo "github.com/campaignhq/campaign-backend/internal/repositories/mongodb"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/campaignhq/campaign-backend/pkg/mongodb"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
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

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	businessRepo := mongorepo.NewBusinessRepository(db)
	leadRepo := mongorepo.NewLeadRepository(db)
	templateRepo := mongorepo.NewTemplateRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	conversationRepo := mongorepo.NewConversationRepository(db)
	optOutRepo := mongorepo.NewOptOutRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db, models.MessagingSettings{
		MockGateway:    cfg.WhatsApp.MockGateway,
		SendRatePerSec: cfg.Worker.SendRatePerSec,
	})

	// WhatsApp gateway
	gateway := whatsapp.NewCloudGateway(cfg.WhatsApp.BaseURL, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	businessService := services.NewBusinessService(businessRepo)
	leadService := services.NewLeadService(leadRepo)
	templateService := services.NewTemplateService(templateRepo)
	campaignService := services.NewCampaignService(campaignRepo, templateRepo, logger)
	conversationService := services.NewConversationService(conversationRepo, leadRepo, optOutRepo, settingsRepo, gateway, logger)
	executor := services.NewCampaignExecutor(campaignRepo, leadRepo, optOutRepo, settingsRepo, conversationRepo, gateway, logger)

	var generatorService *services.GeneratorService
	if cfg.Generator.APIKey != "" {
		generatorService, err = services.NewGeneratorService(context.Background(), cfg.Generator.APIKey, cfg.Generator.Model, logger)
		if err != nil {
			logger.Fatal("Failed to initialize campaign generator", zap.Error(err))
		}
	} else {
		logger.Warn("No generator API key configured, AI endpoints disabled")
	}

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		BusinessHandler:     handlers.NewBusinessHandler(businessService),
		LeadHandler:         handlers.NewLeadHandler(leadService),
		TemplateHandler:     handlers.NewTemplateHandler(templateService, leadService),
		CampaignHandler:     handlers.NewCampaignHandler(campaignService, executor),
		ConversationHandler: handlers.NewConversationHandler(conversationService, cfg.WhatsApp.VerifyToken),
		GeneratorHandler:    handlers.NewGeneratorHandler(generatorService, campaignService, businessService, leadService),
		OptOutHandler:       handlers.NewOptOutHandler(optOutRepo),
		SettingsHandler:     handlers.NewSettingsHandler(settingsRepo),
	}

	router := routes.SetupRouter(cfg, logger, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
