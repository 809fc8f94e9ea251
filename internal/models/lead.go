package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead segments used for campaign targeting.
const (
	SegmentHot  = "hot"
	SegmentWarm = "warm"
	SegmentCold = "cold"
)

// ValidSegment reports whether tag is one of the known lead segments.
func ValidSegment(tag string) bool {
	return tag == SegmentHot || tag == SegmentWarm || tag == SegmentCold
}

// Lead represents a marketing lead belonging to a business
type Lead struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID      primitive.ObjectID `bson:"businessId" json:"business_id"`
	Name            string             `bson:"name" json:"name"`
	Phone           string             `bson:"phone" json:"phone"` // E.164, no leading +
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Segment         string             `bson:"segment" json:"segment"` // hot, warm, cold
	Source          string             `bson:"source,omitempty" json:"source,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LastContactedAt time.Time          `bson:"lastContactedAt,omitempty" json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// SegmentStats holds per-segment lead counts for a business
type SegmentStats struct {
	Hot   int64 `json:"hot"`
	Warm  int64 `json:"warm"`
	Cold  int64 `json:"cold"`
	Total int64 `json:"total"`
}
