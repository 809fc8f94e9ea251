package validation

import (
	"strings"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
)

// Error messages shared between the form and create paths.
const (
	msgNameLength    = "Campaign name must be between 3 and 100 characters"
	msgTemplateID    = "Please select a message template"
	msgScheduleType  = "Schedule type must be immediate, scheduled or recurring"
	msgSchedulePair  = "Please select both date and time for scheduled campaigns"
	msgNoSegments    = "Please select at least one score type"
	msgTooManySegs   = "At most 3 score types can be targeted"
	msgUnknownSeg    = "Score types must be one of hot, warm or cold"
	msgScheduledAt   = "Scheduled time must be a valid future date"
	msgCronFields    = "Cron expression must have exactly 5 fields"
)

// Result is the outcome of validating a campaign payload. Errors maps each
// failing field to a single human-readable message; every failing field is
// reported, not just the first one.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func newResult() Result {
	return Result{Valid: true, Errors: map[string]string{}}
}

func (r *Result) fail(field, message string) {
	// First structural failure per field wins.
	if _, ok := r.Errors[field]; !ok {
		r.Errors[field] = message
	}
	r.Valid = false
}

// ValidateCampaignForm validates raw dashboard form state. It never returns
// an error: all violations come back in the Result so the form layer can
// render them inline per field.
func ValidateCampaignForm(input models.CampaignFormInput) Result {
	res := newResult()

	validateName(&res, input.Name)
	validateTemplateID(&res, input.TemplateID)

	switch input.ScheduleType {
	case models.ScheduleTypeImmediate, models.ScheduleTypeRecurring:
	case models.ScheduleTypeScheduled:
		if input.ScheduledDate == "" || input.ScheduledTime == "" {
			res.fail("scheduled_date", msgSchedulePair)
		}
	default:
		res.fail("schedule_type", msgScheduleType)
	}

	validateTargetLeads(&res, input.TargetLeads)
	return res
}

// ValidateCreateCampaign validates the submission payload against the
// strict create schema: on top of the form rules it requires a parsed,
// strictly future scheduled_at for scheduled campaigns and a well-formed
// 5-field cron expression for recurring ones. now is injected so the
// boundary is testable.
func ValidateCreateCampaign(req models.CreateCampaignRequest, now time.Time) Result {
	res := newResult()

	validateName(&res, req.Name)
	validateTemplateID(&res, req.TemplateID)

	switch req.ScheduleType {
	case models.ScheduleTypeImmediate:
	case models.ScheduleTypeScheduled:
		if req.ScheduledAt.IsZero() || !req.ScheduledAt.After(now) {
			res.fail("scheduled_at", msgScheduledAt)
		}
	case models.ScheduleTypeRecurring:
		if len(strings.Fields(req.CronExpression)) != 5 {
			res.fail("cron_expression", msgCronFields)
		}
	default:
		res.fail("schedule_type", msgScheduleType)
	}

	validateTargetLeads(&res, req.TargetLeads)
	return res
}

func validateName(res *Result, name string) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 || len(trimmed) > 100 {
		res.fail("name", msgNameLength)
	}
}

func validateTemplateID(res *Result, templateID string) {
	if strings.TrimSpace(templateID) == "" {
		res.fail("template_id", msgTemplateID)
	}
}

func validateTargetLeads(res *Result, targetLeads []string) {
	if len(targetLeads) == 0 {
		res.fail("target_leads", msgNoSegments)
		return
	}
	if len(targetLeads) > 3 {
		res.fail("target_leads", msgTooManySegs)
		return
	}
	for _, tag := range targetLeads {
		if !models.ValidSegment(tag) {
			res.fail("target_leads", msgUnknownSeg)
			return
		}
	}
}
