package domain

import "time"

const (
	PassMinDaysValid = 1
	PassMaxDaysValid = 30
)

// Pass is a time-boxed access grant linking a visitor to a sponsoring
// resident. It expires at the end of its last valid day, and carries a
// daily clock-time limit after which entry is refused.
type Pass struct {
	id         string
	residentID string
	visitorID  string
	limit      TimeLimit
	daysValid  int
	expiresAt  time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPass creates a pass valid from now until 23:59:59.999 local time of
// the day daysValid days ahead. Expiration is always end-of-day, not a
// rolling window from the creation instant.
func NewPass(residentID, visitorID string, limit TimeLimit, daysValid int) (*Pass, error) {
	return newPassAt(residentID, visitorID, limit, daysValid, time.Now())
}

func newPassAt(residentID, visitorID string, limit TimeLimit, daysValid int, now time.Time) (*Pass, error) {
	if daysValid < PassMinDaysValid || daysValid > PassMaxDaysValid {
		return nil, NewValidationErrorf("days valid must be between %d and %d", PassMinDaysValid, PassMaxDaysValid)
	}

	return &Pass{
		id:         NewID(),
		residentID: residentID,
		visitorID:  visitorID,
		limit:      limit,
		daysValid:  daysValid,
		expiresAt:  endOfDay(now.AddDate(0, 0, daysValid)),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func RestorePass(id, residentID, visitorID string, limit TimeLimit, daysValid int, expiresAt, createdAt, updatedAt time.Time) *Pass {
	return &Pass{
		id:         id,
		residentID: residentID,
		visitorID:  visitorID,
		limit:      limit,
		daysValid:  daysValid,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *Pass) ID() string           { return p.id }
func (p *Pass) ResidentID() string   { return p.residentID }
func (p *Pass) VisitorID() string    { return p.visitorID }
func (p *Pass) TimeLimit() TimeLimit { return p.limit }
func (p *Pass) DaysValid() int       { return p.daysValid }
func (p *Pass) ExpiresAt() time.Time { return p.expiresAt }
func (p *Pass) CreatedAt() time.Time { return p.createdAt }
func (p *Pass) UpdatedAt() time.Time { return p.updatedAt }

func (p *Pass) Equals(other *Pass) bool {
	return other != nil && p.id == other.id
}

func (p *Pass) IsExpired() bool {
	return p.ExpiredAt(time.Now())
}

func (p *Pass) ExpiredAt(now time.Time) bool {
	return now.After(p.expiresAt)
}

// CanEnterNow reports whether the visitor may enter at this instant:
// the pass must not be expired and the daily time limit must not have
// passed. The limit check compares time of day only.
func (p *Pass) CanEnterNow() bool {
	return p.CanEnterAt(time.Now())
}

func (p *Pass) CanEnterAt(now time.Time) bool {
	if p.ExpiredAt(now) {
		return false
	}
	return !p.limit.PassedAt(now)
}

// Remaining returns the non-negative time left until expiration.
func (p *Pass) Remaining() time.Duration {
	return p.RemainingAt(time.Now())
}

func (p *Pass) RemainingAt(now time.Time) time.Duration {
	remaining := p.expiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
