package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/pkg/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type conversationFixture struct {
	svc              *ConversationService
	conversationRepo *fakeConversationRepo
	leadRepo         *fakeLeadRepo
	optOutRepo       *fakeOptOutRepo
	mock             *whatsapp.MockGateway
}

func newConversationFixture() *conversationFixture {
	f := &conversationFixture{
		conversationRepo: newFakeConversationRepo(),
		leadRepo:         &fakeLeadRepo{},
		optOutRepo:       newFakeOptOutRepo(),
		mock:             whatsapp.NewMockGateway(),
	}
	settingsRepo := &fakeSettingsRepo{settings: models.MessagingSettings{MockGateway: true}}
	f.svc = NewConversationService(
		f.conversationRepo, f.leadRepo, f.optOutRepo, settingsRepo,
		whatsapp.NewMockGateway(), zap.NewNop(),
	)
	f.svc.mockGateway = f.mock
	return f
}

func (f *conversationFixture) seedConversation(phone string) *models.Conversation {
	conversation, _ := f.conversationRepo.FindOrCreate(
		context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), phone)
	return conversation
}

func TestConversationService_SendMessage(t *testing.T) {
	f := newConversationFixture()
	conversation := f.seedConversation("2348010000001")

	message, err := f.svc.SendMessage(context.Background(), conversation.ID, "Hello there")
	require.NoError(t, err)

	assert.Equal(t, models.MessageOutbound, message.Direction)
	assert.Equal(t, models.MessageStatusSent, message.Status)
	assert.NotEmpty(t, message.WAMessageID)
	assert.Len(t, f.mock.Sent, 1)
	assert.Equal(t, "2348010000001", f.mock.Sent[0].To)
}

func TestConversationService_SendMessageToOptedOut(t *testing.T) {
	f := newConversationFixture()
	conversation := f.seedConversation("2348010000001")
	require.NoError(t, f.optOutRepo.Add(context.Background(), "2348010000001", "STOP reply"))

	_, err := f.svc.SendMessage(context.Background(), conversation.ID, "Hello there")

	assert.True(t, errors.Is(err, ErrRecipientOptedOut))
	assert.Empty(t, f.mock.Sent)
	assert.Empty(t, f.conversationRepo.messages)
}

func TestConversationService_SendMessageGatewayFailureIsRecorded(t *testing.T) {
	f := newConversationFixture()
	conversation := f.seedConversation("2348010000001")
	f.mock.FailFor["2348010000001"] = true

	_, err := f.svc.SendMessage(context.Background(), conversation.ID, "Hello there")
	require.Error(t, err)

	require.Len(t, f.conversationRepo.messages, 1)
	assert.Equal(t, models.MessageStatusFailed, f.conversationRepo.messages[0].Status)
}

func TestConversationService_GetMessagesMarksRead(t *testing.T) {
	f := newConversationFixture()
	conversation := f.seedConversation("2348010000001")
	require.NoError(t, f.conversationRepo.AppendMessage(context.Background(), &models.ConversationMessage{
		ConversationID: conversation.ID,
		Direction:      models.MessageInbound,
		Content:        "hi",
	}))

	messages, err := f.svc.GetMessages(context.Background(), conversation.ID, 1, 50)
	require.NoError(t, err)

	assert.Len(t, messages, 1)
	assert.Equal(t, 1, f.conversationRepo.readCount[conversation.ID])
}

func TestConversationService_HandleInboundKnownLead(t *testing.T) {
	f := newConversationFixture()
	businessID := primitive.NewObjectID()
	lead := &models.Lead{BusinessID: businessID, Name: "Ada", Phone: "2348010000001", Segment: models.SegmentWarm}
	require.NoError(t, f.leadRepo.Create(context.Background(), lead))

	require.NoError(t, f.svc.HandleInbound(context.Background(), businessID, "2348010000001", "I'm interested"))

	require.Len(t, f.conversationRepo.messages, 1)
	assert.Equal(t, models.MessageInbound, f.conversationRepo.messages[0].Direction)
	assert.Equal(t, models.MessageStatusReceived, f.conversationRepo.messages[0].Status)
	// no new lead was invented for a known number
	assert.Len(t, f.leadRepo.leads, 1)
}

func TestConversationService_HandleInboundUnknownNumberCreatesColdLead(t *testing.T) {
	f := newConversationFixture()
	businessID := primitive.NewObjectID()

	require.NoError(t, f.svc.HandleInbound(context.Background(), businessID, "2348019999999", "hello?"))

	require.Len(t, f.leadRepo.leads, 1)
	lead := f.leadRepo.leads[0]
	assert.Equal(t, "2348019999999", lead.Phone)
	assert.Equal(t, models.SegmentCold, lead.Segment)
	assert.Equal(t, "whatsapp_inbound", lead.Source)
}

func TestConversationService_HandleInboundStopOptsOut(t *testing.T) {
	f := newConversationFixture()
	businessID := primitive.NewObjectID()

	for _, reply := range []string{"STOP", "stop", "  Stop  "} {
		require.NoError(t, f.svc.HandleInbound(context.Background(), businessID, "2348010000001", reply))

		optedOut, err := f.optOutRepo.IsOptedOut(context.Background(), "2348010000001")
		require.NoError(t, err)
		assert.True(t, optedOut, "reply %q", reply)
	}
}

func TestConversationService_HandleInboundNonStopDoesNotOptOut(t *testing.T) {
	f := newConversationFixture()

	require.NoError(t, f.svc.HandleInbound(context.Background(), primitive.NewObjectID(), "2348010000001", "please stop sending memes"))

	optedOut, err := f.optOutRepo.IsOptedOut(context.Background(), "2348010000001")
	require.NoError(t, err)
	assert.False(t, optedOut)
}
