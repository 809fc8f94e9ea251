package handlers

import (
	"net/http"

	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/gin-gonic/gin"
)

// OptOutHandler handles suppression list HTTP requests
type OptOutHandler struct {
	optOutRepo repositories.OptOutRepository
}

// NewOptOutHandler creates a new OptOutHandler
func NewOptOutHandler(optOutRepo repositories.OptOutRepository) *OptOutHandler {
	return &OptOutHandler{optOutRepo: optOutRepo}
}

// List handles GET /optouts
func (h *OptOutHandler) List(c *gin.Context) {
	entries, err := h.optOutRepo.FindAll(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list opt-outs"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Add handles POST /optouts
func (h *OptOutHandler) Add(c *gin.Context) {
	var request struct {
		Phone  string `json:"phone" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.optOutRepo.Add(c, request.Phone, request.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add opt-out"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Number suppressed"})
}

// Remove handles DELETE /optouts/:phone
func (h *OptOutHandler) Remove(c *gin.Context) {
	if err := h.optOutRepo.Remove(c, c.Param("phone")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove opt-out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Number released"})
}
