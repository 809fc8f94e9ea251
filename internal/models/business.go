package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business represents a business account that owns leads, templates and
// campaigns
type Business struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"owner_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Industry    string             `bson:"industry,omitempty" json:"industry,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsAppID  string             `bson:"whatsappId,omitempty" json:"whatsapp_id,omitempty"` // WhatsApp Business phone number ID
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}
