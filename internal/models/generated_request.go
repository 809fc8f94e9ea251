package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateGeneratedCampaignRequest is the persistable draft produced by
// reducing an AI-generated campaign strategy. Unlike CreateCampaignRequest
// it carries the message content inline: the backing template is created as
// part of accepting the draft.
type CreateGeneratedCampaignRequest struct {
	BusinessID     primitive.ObjectID `json:"business_id"`
	Name           string             `json:"name"`
	MessageContent string             `json:"message_content"`
	TemplateType   string             `json:"template_type"`
	ScheduleType   string             `json:"schedule_type"`
	ScheduledAt    time.Time          `json:"scheduled_at,omitempty"`
	TargetLeads    []string           `json:"target_leads"`
}
