package handlers

import (
	"errors"
	"net/http"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeneratorHandler handles AI campaign generation HTTP requests
type GeneratorHandler struct {
	generatorService *services.GeneratorService
	campaignService  *services.CampaignService
	businessService  *services.BusinessService
	leadService      *services.LeadService
}

// NewGeneratorHandler creates a new GeneratorHandler
func NewGeneratorHandler(
	generatorService *services.GeneratorService,
	campaignService *services.CampaignService,
	businessService *services.BusinessService,
	leadService *services.LeadService,
) *GeneratorHandler {
	return &GeneratorHandler{
		generatorService: generatorService,
		campaignService:  campaignService,
		businessService:  businessService,
		leadService:      leadService,
	}
}

// Generate handles POST /ai/campaigns/generate
func (h *GeneratorHandler) Generate(c *gin.Context) {
	if h.generatorService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generator is not configured"})
		return
	}

	var request struct {
		BusinessID string `json:"business_id" binding:"required"`
		Goal       string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	businessID, err := primitive.ObjectIDFromHex(request.BusinessID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	business, err := h.businessService.GetByID(c, businessID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get business"})
		return
	}

	stats, err := h.leadService.SegmentStats(c, businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute segment stats"})
		return
	}

	generated, err := h.generatorService.GenerateCampaign(c, business, stats, request.Goal)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Campaign generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, generated)
}

// Accept handles POST /ai/campaigns: it maps a generated strategy plus the
// user's chosen name to a draft and persists it.
func (h *GeneratorHandler) Accept(c *gin.Context) {
	var request struct {
		BusinessID string                    `json:"business_id" binding:"required"`
		Name       string                    `json:"name" binding:"required"`
		Generated  *models.GeneratedCampaign `json:"generated" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	businessID, err := primitive.ObjectIDFromHex(request.BusinessID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	campaign, err := h.campaignService.CreateFromGenerated(c, businessID, request.Generated, request.Name, c.GetString("user_id"))
	if err != nil {
		var missingErr *services.MissingInputError
		if errors.As(err, &missingErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": missingErr.Error()})
			return
		}
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Errors})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}
