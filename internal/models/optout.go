package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OptOutEntry represents a phone number that must never receive campaign
// or conversation messages. Campaign execution and outbound sends consult
// this list before dispatching.
type OptOutEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone     string             `bson:"phone" json:"phone"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
