package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/campaignhq/campaign-backend/internal/validation"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	campaignService *services.CampaignService
	executor        *services.CampaignExecutor
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *services.CampaignService, executor *services.CampaignExecutor) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		executor:        executor,
	}
}

// Validate handles POST /businesses/:id/campaigns/validate. The dashboard
// calls this while the form is being filled; it always returns 200 with the
// per-field error map.
func (h *CampaignHandler) Validate(c *gin.Context) {
	var input models.CampaignFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, validation.ValidateCampaignForm(input))
}

// Create handles POST /businesses/:id/campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignService.Create(c, businessID, req, c.GetString("user_id"))
	if err != nil {
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

// List handles GET /businesses/:id/campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	campaigns, err := h.campaignService.GetByBusiness(c, businessID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}

	// Attach derived progress so the dashboard does not recompute it.
	type campaignWithProgress struct {
		models.Campaign
		Progress int `json:"progress"`
	}
	out := make([]campaignWithProgress, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, campaignWithProgress{
			Campaign: campaigns[i],
			Progress: campaigns[i].Progress(),
		})
	}

	c.JSON(http.StatusOK, out)
}

// Get handles GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	campaign, err := h.campaignService.GetByID(c, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign, "progress": campaign.Progress()})
}

// Cancel handles POST /campaigns/:id/cancel
func (h *CampaignHandler) Cancel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	campaign, err := h.campaignService.Cancel(c, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if errors.Is(err, services.ErrNotCancellable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel campaign"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// Execute handles POST /campaigns/:id/execute
func (h *CampaignHandler) Execute(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.executor.Execute(c, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign executed"})
}

// Stats handles GET /businesses/:id/campaigns/stats
func (h *CampaignHandler) Stats(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	stats, err := h.campaignService.Stats(c, businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute campaign stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
