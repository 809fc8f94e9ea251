package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses. Transitions are owned by the campaign service and the
// executor worker: draft -> scheduled -> running -> completed | failed,
// with cancelled reachable from draft and scheduled only.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
	CampaignStatusFailed    = "failed"
	CampaignStatusCancelled = "cancelled"
)

// Schedule types accepted on campaign creation.
const (
	ScheduleTypeImmediate = "immediate"
	ScheduleTypeScheduled = "scheduled"
	ScheduleTypeRecurring = "recurring"
)

// Campaign represents a WhatsApp broadcast campaign owned by a business
type Campaign struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID      primitive.ObjectID `bson:"businessId" json:"business_id"`
	Name            string             `bson:"name" json:"name"`
	TemplateID      primitive.ObjectID `bson:"templateId" json:"template_id"`
	MessageContent  string             `bson:"messageContent" json:"message_content"`
	ScheduleType    string             `bson:"scheduleType" json:"schedule_type"`
	ScheduledAt     time.Time          `bson:"scheduledAt,omitempty" json:"scheduled_at,omitempty"`
	CronExpression  string             `bson:"cronExpression,omitempty" json:"cron_expression,omitempty"`
	TargetLeads     []string           `bson:"targetLeads" json:"target_leads"`
	Status          string             `bson:"status" json:"status"`
	TotalRecipients int                `bson:"totalRecipients" json:"total_recipients"`
	SentCount       int                `bson:"sentCount" json:"sent_count"`
	FailedCount     int                `bson:"failedCount" json:"failed_count"`
	StartedAt       time.Time          `bson:"startedAt,omitempty" json:"started_at,omitempty"`
	CompletedAt     time.Time          `bson:"completedAt,omitempty" json:"completed_at,omitempty"`
	CreatedBy       string             `bson:"createdBy" json:"created_by"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Progress returns the campaign's delivery progress as a whole percentage
// in [0,100]. A campaign with no recipients reports 0 rather than dividing
// by zero.
func (c *Campaign) Progress() int {
	if c.TotalRecipients == 0 {
		return 0
	}
	return int(math.Round(float64(c.SentCount) / float64(c.TotalRecipients) * 100))
}

// IsCancellable reports whether the campaign can still be cancelled.
// Running and terminal campaigns cannot.
func (c *Campaign) IsCancellable() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusScheduled
}

// SuccessRate returns the aggregate send success rate across a set of
// campaigns as a whole percentage. Counters are summed before dividing so
// large campaigns weigh proportionally; an empty or all-zero set yields 0.
func SuccessRate(campaigns []Campaign) int {
	var sent, total int
	for i := range campaigns {
		sent += campaigns[i].SentCount
		total += campaigns[i].TotalRecipients
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(sent) / float64(total) * 100))
}

// CampaignStats is the aggregate returned by the campaign stats endpoint
type CampaignStats struct {
	TotalCampaigns  int `json:"total_campaigns"`
	ActiveCampaigns int `json:"active_campaigns"`
	TotalSent       int `json:"total_sent"`
	TotalFailed     int `json:"total_failed"`
	SuccessRate     int `json:"success_rate"`
}
