package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationHandler handles conversation HTTP requests and the inbound
// WhatsApp webhook
type ConversationHandler struct {
	conversationService *services.ConversationService
	verifyToken         string
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversationService *services.ConversationService, verifyToken string) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		verifyToken:         verifyToken,
	}
}

// List handles GET /businesses/:id/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	conversations, err := h.conversationService.GetByBusiness(c, businessID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// Messages handles GET /conversations/:id/messages
func (h *ConversationHandler) Messages(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.conversationService.GetMessages(c, id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Send handles POST /conversations/:id/messages
func (h *ConversationHandler) Send(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.conversationService.SendMessage(c, id, request.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		if errors.Is(err, services.ErrRecipientOptedOut) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// VerifyWebhook handles GET /webhooks/whatsapp, the Cloud API subscription
// handshake
func (h *ConversationHandler) VerifyWebhook(c *gin.Context) {
	if c.Query("hub.mode") == "subscribe" && c.Query("hub.verify_token") == h.verifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.Status(http.StatusForbidden)
}

// Webhook handles POST /webhooks/whatsapp with an inbound message payload
func (h *ConversationHandler) Webhook(c *gin.Context) {
	var payload struct {
		BusinessID string `json:"business_id" binding:"required"`
		From       string `json:"from" binding:"required"`
		Body       string `json:"body"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	businessID, err := primitive.ObjectIDFromHex(payload.BusinessID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID format"})
		return
	}

	if err := h.conversationService.HandleInbound(c, businessID, payload.From, payload.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process inbound message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
