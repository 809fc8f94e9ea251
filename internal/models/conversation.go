package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message directions and statuses.
const (
	MessageInbound  = "inbound"
	MessageOutbound = "outbound"

	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
	MessageStatusReceived  = "received"
)

// Conversation represents a WhatsApp conversation between a business and a
// lead. There is at most one conversation per (business, lead) pair.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID    primitive.ObjectID `bson:"businessId" json:"business_id"`
	LeadID        primitive.ObjectID `bson:"leadId" json:"lead_id"`
	Phone         string             `bson:"phone" json:"phone"`
	LastMessage   string             `bson:"lastMessage,omitempty" json:"last_message,omitempty"`
	LastMessageAt time.Time          `bson:"lastMessageAt,omitempty" json:"last_message_at,omitempty"`
	UnreadCount   int                `bson:"unreadCount" json:"unread_count"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ConversationMessage represents a single message within a conversation
type ConversationMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversation_id"`
	Direction      string             `bson:"direction" json:"direction"` // inbound, outbound
	Content        string             `bson:"content" json:"content"`
	Status         string             `bson:"status" json:"status"`
	WAMessageID    string             `bson:"waMessageId,omitempty" json:"wa_message_id,omitempty"`
	CampaignID     primitive.ObjectID `bson:"campaignId,omitempty" json:"campaign_id,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
}
