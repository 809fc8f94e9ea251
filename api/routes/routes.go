package routes

import (
	"net/http"

	"github.com/campaignhq/campaign-backend/internal/config"
	"github.com/campaignhq/campaign-backend/internal/handlers"
	"github.com/campaignhq/campaign-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HandlerDependencies collects the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	BusinessHandler     *handlers.BusinessHandler
	LeadHandler         *handlers.LeadHandler
	TemplateHandler     *handlers.TemplateHandler
	CampaignHandler     *handlers.CampaignHandler
	ConversationHandler *handlers.ConversationHandler
	GeneratorHandler    *handlers.GeneratorHandler
	OptOutHandler       *handlers.OptOutHandler
	SettingsHandler     *handlers.SettingsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *zap.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		webhooks := public.Group("/webhooks")
		{
			webhooks.GET("/whatsapp", deps.ConversationHandler.VerifyWebhook)
			webhooks.POST("/whatsapp", deps.ConversationHandler.Webhook)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		businesses := protected.Group("/businesses")
		{
			businesses.GET("", deps.BusinessHandler.List)
			businesses.POST("", deps.BusinessHandler.Create)
			businesses.GET("/:id", deps.BusinessHandler.Get)
			businesses.PUT("/:id", deps.BusinessHandler.Update)
			businesses.DELETE("/:id", deps.BusinessHandler.Delete)

			// Business-scoped child resources
			businesses.GET("/:id/leads", deps.LeadHandler.List)
			businesses.POST("/:id/leads", deps.LeadHandler.Create)
			businesses.POST("/:id/leads/import", deps.LeadHandler.Import)
			businesses.GET("/:id/leads/segments/stats", deps.LeadHandler.SegmentStats)

			businesses.GET("/:id/templates", deps.TemplateHandler.List)
			businesses.POST("/:id/templates", deps.TemplateHandler.Create)

			businesses.GET("/:id/campaigns", deps.CampaignHandler.List)
			businesses.POST("/:id/campaigns", deps.CampaignHandler.Create)
			businesses.POST("/:id/campaigns/validate", deps.CampaignHandler.Validate)
			businesses.GET("/:id/campaigns/stats", deps.CampaignHandler.Stats)

			businesses.GET("/:id/conversations", deps.ConversationHandler.List)
		}

		leads := protected.Group("/leads")
		{
			leads.GET("/:id", deps.LeadHandler.Get)
			leads.PUT("/:id", deps.LeadHandler.Update)
			leads.DELETE("/:id", deps.LeadHandler.Delete)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("/:id", deps.TemplateHandler.Get)
			templates.PUT("/:id", deps.TemplateHandler.Update)
			templates.DELETE("/:id", deps.TemplateHandler.Delete)
			templates.POST("/:id/preview", deps.TemplateHandler.Preview)
		}

		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("/:id", deps.CampaignHandler.Get)
			campaigns.POST("/:id/cancel", deps.CampaignHandler.Cancel)
			campaigns.POST("/:id/execute", deps.CampaignHandler.Execute)
		}

		conversations := protected.Group("/conversations")
		{
			conversations.GET("/:id/messages", deps.ConversationHandler.Messages)
			conversations.POST("/:id/messages", deps.ConversationHandler.Send)
		}

		optouts := protected.Group("/optouts")
		{
			optouts.GET("", deps.OptOutHandler.List)
			optouts.POST("", deps.OptOutHandler.Add)
			optouts.DELETE("/:phone", deps.OptOutHandler.Remove)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", deps.SettingsHandler.Get)
			settings.PUT("", deps.SettingsHandler.Update)
		}

		ai := protected.Group("/ai")
		{
			ai.POST("/campaigns/generate", deps.GeneratorHandler.Generate)
			ai.POST("/campaigns", deps.GeneratorHandler.Accept)
		}
	}

	return router
}
