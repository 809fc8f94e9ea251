package models

import (
	"fmt"
	"strings"
	"time"
)

// Schedule is the parsed form of a campaign's schedule. Exactly one variant
// exists per schedule type, and each variant carries only the fields that
// type needs, so an inconsistent combination (a recurring schedule with a
// datetime, say) cannot be constructed.
type Schedule interface {
	Type() string
}

// ImmediateSchedule fires as soon as the campaign is created.
type ImmediateSchedule struct{}

// ScheduledSchedule fires once at a fixed instant.
type ScheduledSchedule struct {
	At time.Time
}

// RecurringSchedule fires on a 5-field cron expression, stored in UTC.
type RecurringSchedule struct {
	Cron string
}

func (ImmediateSchedule) Type() string { return ScheduleTypeImmediate }
func (ScheduledSchedule) Type() string { return ScheduleTypeScheduled }
func (RecurringSchedule) Type() string { return ScheduleTypeRecurring }

// ParseSchedule builds a Schedule from the raw create-request fields. It is
// the only way to obtain a Schedule, so every downstream consumer can rely
// on the variant carrying valid data: scheduled requires a non-zero future
// instant, recurring requires a 5-field cron expression.
func ParseSchedule(scheduleType string, scheduledAt time.Time, cronExpression string, now time.Time) (Schedule, error) {
	switch scheduleType {
	case ScheduleTypeImmediate:
		return ImmediateSchedule{}, nil
	case ScheduleTypeScheduled:
		if scheduledAt.IsZero() {
			return nil, fmt.Errorf("scheduled campaign requires scheduled_at")
		}
		if !scheduledAt.After(now) {
			return nil, fmt.Errorf("scheduled_at must be in the future")
		}
		return ScheduledSchedule{At: scheduledAt}, nil
	case ScheduleTypeRecurring:
		if len(strings.Fields(cronExpression)) != 5 {
			return nil, fmt.Errorf("recurring campaign requires a 5-field cron expression")
		}
		return RecurringSchedule{Cron: cronExpression}, nil
	default:
		return nil, fmt.Errorf("unknown schedule type %q", scheduleType)
	}
}
