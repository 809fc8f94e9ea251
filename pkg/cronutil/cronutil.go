// Package cronutil converts the hour field of 5-field cron expressions
// between a caller's local offset and UTC. Only purely numeric hour fields
// are shifted; wildcards and step expressions pass through untouched.
//
// Known limitation: the shift is hour-only. Rolling the hour across
// midnight does not adjust the day-of-month, month or day-of-week fields,
// so a schedule near midnight can fire on the neighbouring calendar day
// for some offset/hour combinations.
package cronutil

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedCronError reports a cron expression with fewer than the required
// five fields.
type MalformedCronError struct {
	Expr string
}

func (e *MalformedCronError) Error() string {
	return fmt.Sprintf("malformed cron expression %q: expected 5 fields", e.Expr)
}

// ToUTC converts the hour field of a local-time cron expression to UTC.
// offsetHours is the caller's UTC offset in whole hours (negative west of
// UTC). Expressions with fewer than 5 fields fail with *MalformedCronError
// rather than silently producing a wrong schedule; a non-numeric hour field
// returns the expression unchanged.
func ToUTC(expr string, offsetHours int) (string, error) {
	return shiftHour(expr, -offsetHours)
}

// FromUTC converts the hour field of a UTC cron expression back to the
// caller's local offset.
func FromUTC(expr string, offsetHours int) (string, error) {
	return shiftHour(expr, offsetHours)
}

func shiftHour(expr string, delta int) (string, error) {
	fields := strings.Fields(expr)
	if len(fields) < 5 {
		return "", &MalformedCronError{Expr: expr}
	}

	hour, err := strconv.Atoi(fields[1])
	if err != nil {
		// Wildcards and step expressions carry no fixed hour to shift.
		return expr, nil
	}

	fields[1] = strconv.Itoa(((hour+delta)%24 + 24) % 24)
	return strings.Join(fields, " "), nil
}

// LocalDisplay renders a UTC cron expression as a human-readable local
// time, e.g. "Every day at 09:30". This is a display-only path: malformed
// or non-numeric input degrades by returning the expression unchanged
// instead of failing.
func LocalDisplay(expr string, offsetHours int) string {
	fields := strings.Fields(expr)
	if len(fields) < 5 {
		return expr
	}

	minute, err := strconv.Atoi(fields[0])
	if err != nil {
		return expr
	}
	hour, err := strconv.Atoi(fields[1])
	if err != nil {
		return expr
	}

	localHour := ((hour+offsetHours)%24 + 24) % 24
	return fmt.Sprintf("Every day at %02d:%02d", localHour, minute)
}
