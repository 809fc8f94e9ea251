package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template represents a reusable message template
type Template struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID primitive.ObjectID `bson:"businessId" json:"business_id"`
	Name       string             `bson:"name" json:"name"`
	Content    string             `bson:"content" json:"content"`
	Type       string             `bson:"type" json:"type"` // promotional, follow_up, announcement, generic
	Variables  []string           `bson:"variables" json:"variables"`
	IsActive   bool               `bson:"isActive" json:"is_active"`
	CreatedBy  string             `bson:"createdBy" json:"created_by"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updated_at"`
}
