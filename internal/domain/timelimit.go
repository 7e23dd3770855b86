package domain

import (
	"regexp"
	"time"
)

var timeLimitPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// TimeLimit is a 24-hour HH:MM clock time after which a visitor may not
// enter, independent of the pass's overall expiration date.
type TimeLimit struct {
	value  string
	hour   int
	minute int
}

func NewTimeLimit(raw string) (TimeLimit, error) {
	if raw == "" {
		return TimeLimit{}, NewValidationError("time limit is required")
	}

	if !timeLimitPattern.MatchString(raw) {
		return TimeLimit{}, NewValidationError("time limit must be in HH:MM format (00:00 to 23:59)")
	}

	hour := int(raw[0]-'0')*10 + int(raw[1]-'0')
	minute := int(raw[3]-'0')*10 + int(raw[4]-'0')

	return TimeLimit{value: raw, hour: hour, minute: minute}, nil
}

func (t TimeLimit) String() string {
	return t.value
}

func (t TimeLimit) Hour() int {
	return t.hour
}

func (t TimeLimit) Minute() int {
	return t.minute
}

// PassedAt reports whether the clock time of now is already past the
// limit. Only the time of day is compared; the calendar date of now is
// ignored.
func (t TimeLimit) PassedAt(now time.Time) bool {
	if now.Hour() > t.hour {
		return true
	}
	if now.Hour() == t.hour && now.Minute() > t.minute {
		return true
	}
	return false
}

// On stamps the given calendar date with this time of day.
func (t TimeLimit) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}
