package validation

import "github.com/campaignhq/campaign-backend/internal/models"

// FormState is the typed campaign form record. Every mutation goes through
// a named setter so the cross-field invariants live in one place: switching
// the schedule type away from "scheduled" clears the date and time fields,
// and switching away from "recurring" clears the cron expression. A stale
// datetime can therefore never survive a schedule-type change.
type FormState struct {
	input          models.CampaignFormInput
	cronExpression string
}

// NewFormState returns an empty form defaulting to an immediate schedule.
func NewFormState() FormState {
	return FormState{
		input: models.CampaignFormInput{
			ScheduleType: models.ScheduleTypeImmediate,
			TargetLeads:  []string{},
		},
	}
}

// SetName sets the campaign name.
func (f FormState) SetName(name string) FormState {
	f.input.Name = name
	return f
}

// SetTemplateID sets the selected template.
func (f FormState) SetTemplateID(id string) FormState {
	f.input.TemplateID = id
	return f
}

// SetScheduleType switches the schedule kind and clears the fields that no
// longer apply.
func (f FormState) SetScheduleType(scheduleType string) FormState {
	f.input.ScheduleType = scheduleType
	if scheduleType != models.ScheduleTypeScheduled {
		f.input.ScheduledDate = ""
		f.input.ScheduledTime = ""
	}
	if scheduleType != models.ScheduleTypeRecurring {
		f.cronExpression = ""
	}
	return f
}

// SetScheduledDate sets the calendar date for a scheduled campaign.
func (f FormState) SetScheduledDate(date string) FormState {
	f.input.ScheduledDate = date
	return f
}

// SetScheduledTime sets the time of day for a scheduled campaign.
func (f FormState) SetScheduledTime(t string) FormState {
	f.input.ScheduledTime = t
	return f
}

// SetCronExpression sets the recurrence rule for a recurring campaign.
func (f FormState) SetCronExpression(expr string) FormState {
	f.cronExpression = expr
	return f
}

// ToggleTargetLead adds the segment tag if absent and removes it if present.
func (f FormState) ToggleTargetLead(tag string) FormState {
	for i, existing := range f.input.TargetLeads {
		if existing == tag {
			leads := make([]string, 0, len(f.input.TargetLeads)-1)
			leads = append(leads, f.input.TargetLeads[:i]...)
			leads = append(leads, f.input.TargetLeads[i+1:]...)
			f.input.TargetLeads = leads
			return f
		}
	}
	leads := make([]string, len(f.input.TargetLeads), len(f.input.TargetLeads)+1)
	copy(leads, f.input.TargetLeads)
	f.input.TargetLeads = append(leads, tag)
	return f
}

// Input returns the raw form input for validation.
func (f FormState) Input() models.CampaignFormInput {
	return f.input
}

// CronExpression returns the recurrence rule, empty unless the schedule
// type is recurring.
func (f FormState) CronExpression() string {
	return f.cronExpression
}

// Validate runs the form-level rules against the current state.
func (f FormState) Validate() Result {
	return ValidateCampaignForm(f.input)
}
