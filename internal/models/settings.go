package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessagingSettings is the single settings document read by the campaign
// executor before each run. Mock mode short-circuits the WhatsApp gateway.
type MessagingSettings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DefaultSenderID string             `bson:"defaultSenderId" json:"default_sender_id"`
	MockGateway     bool               `bson:"mockGateway" json:"mock_gateway"`
	SendRatePerSec  int                `bson:"sendRatePerSec" json:"send_rate_per_sec"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}
