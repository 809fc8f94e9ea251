package services

import (
	"context"
	"errors"
	"strings"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrRecipientOptedOut is returned when sending to a suppressed number
var ErrRecipientOptedOut = errors.New("recipient has opted out")

// ConversationService handles two-way messaging between a business and its
// leads
type ConversationService struct {
	conversationRepo repositories.ConversationRepository
	leadRepo         repositories.LeadRepository
	optOutRepo       repositories.OptOutRepository
	settingsRepo     repositories.SettingsRepository
	gateway          whatsapp.Gateway
	mockGateway      whatsapp.Gateway
	logger           *zap.Logger
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	conversationRepo repositories.ConversationRepository,
	leadRepo repositories.LeadRepository,
	optOutRepo repositories.OptOutRepository,
	settingsRepo repositories.SettingsRepository,
	gateway whatsapp.Gateway,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		leadRepo:         leadRepo,
		optOutRepo:       optOutRepo,
		settingsRepo:     settingsRepo,
		gateway:          gateway,
		mockGateway:      whatsapp.NewMockGateway(),
		logger:           logger,
	}
}

// GetByBusiness lists a business's conversations
func (s *ConversationService) GetByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Conversation, error) {
	return s.conversationRepo.FindByBusiness(ctx, businessID, page, limit)
}

// GetMessages returns a conversation's messages and clears its unread count
func (s *ConversationService) GetMessages(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]*models.ConversationMessage, error) {
	messages, err := s.conversationRepo.FindMessages(ctx, conversationID, page, limit)
	if err != nil {
		return nil, err
	}
	if err := s.conversationRepo.MarkRead(ctx, conversationID); err != nil {
		s.logger.Warn("failed to mark conversation read",
			zap.String("conversation_id", conversationID.Hex()), zap.Error(err))
	}
	return messages, nil
}

// SendMessage sends a free-form message within a conversation
func (s *ConversationService) SendMessage(ctx context.Context, conversationID primitive.ObjectID, content string) (*models.ConversationMessage, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	optedOut, err := s.optOutRepo.IsOptedOut(ctx, conversation.Phone)
	if err != nil {
		return nil, err
	}
	if optedOut {
		return nil, ErrRecipientOptedOut
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	gateway := s.gateway
	if settings.MockGateway {
		gateway = s.mockGateway
	}

	messageID, err := gateway.SendMessage(ctx, conversation.Phone, content)
	message := &models.ConversationMessage{
		ConversationID: conversationID,
		Direction:      models.MessageOutbound,
		Content:        content,
		Status:         models.MessageStatusSent,
		WAMessageID:    messageID,
	}
	if err != nil {
		message.Status = models.MessageStatusFailed
		if appendErr := s.conversationRepo.AppendMessage(ctx, message); appendErr != nil {
			s.logger.Warn("failed to record failed send", zap.Error(appendErr))
		}
		return nil, err
	}

	if err := s.conversationRepo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// HandleInbound processes a webhook message from a lead. Unknown numbers
// are captured as new cold leads; a STOP reply adds the number to the
// suppression list.
func (s *ConversationService) HandleInbound(ctx context.Context, businessID primitive.ObjectID, phone, content string) error {
	lead, err := s.leadRepo.FindByPhone(ctx, businessID, phone)
	if errors.Is(err, repositories.ErrNotFound) {
		lead = &models.Lead{
			BusinessID: businessID,
			Name:       phone,
			Phone:      phone,
			Segment:    models.SegmentCold,
			Source:     "whatsapp_inbound",
		}
		if err := s.leadRepo.Create(ctx, lead); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	conversation, err := s.conversationRepo.FindOrCreate(ctx, businessID, lead.ID, phone)
	if err != nil {
		return err
	}

	message := &models.ConversationMessage{
		ConversationID: conversation.ID,
		Direction:      models.MessageInbound,
		Content:        content,
		Status:         models.MessageStatusReceived,
	}
	if err := s.conversationRepo.AppendMessage(ctx, message); err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(content), "stop") {
		if err := s.optOutRepo.Add(ctx, phone, "STOP reply"); err != nil {
			s.logger.Error("failed to record opt-out", zap.String("phone", phone), zap.Error(err))
		}
	}
	return nil
}
