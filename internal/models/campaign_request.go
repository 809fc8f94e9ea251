package models

import "time"

// CampaignFormInput is the raw form state submitted by the dashboard. Date
// and time arrive as separate strings and are combined into ScheduledAt by
// the handler only after form validation passes.
type CampaignFormInput struct {
	Name          string   `json:"name"`
	TemplateID    string   `json:"template_id"`
	ScheduleType  string   `json:"schedule_type"`
	ScheduledDate string   `json:"scheduled_date"`
	ScheduledTime string   `json:"scheduled_time"`
	TargetLeads   []string `json:"target_leads"`
}

// CreateCampaignRequest is the submission payload for creating a campaign.
// It must pass the strict create schema before the service persists it.
type CreateCampaignRequest struct {
	Name           string                   `json:"name"`
	TemplateID     string                   `json:"template_id"`
	MessageContent string                   `json:"message_content"`
	ScheduleType   string                   `json:"schedule_type"`
	ScheduledAt    time.Time                `json:"scheduled_at,omitempty"`
	CronExpression string                   `json:"cron_expression,omitempty"`
	TargetLeads    []string                 `json:"target_leads"`
	LeadData       []map[string]interface{} `json:"lead_data,omitempty"`
	UTCOffsetHours int                      `json:"utc_offset_hours,omitempty"` // caller's local UTC offset, used for cron normalization
}
