package domain

import "time"

type ResidentRole string

const (
	RoleOwner  ResidentRole = "owner"
	RoleTenant ResidentRole = "tenant"
	RoleFamily ResidentRole = "family"
)

func ParseResidentRole(s string) (ResidentRole, bool) {
	switch ResidentRole(s) {
	case RoleOwner, RoleTenant, RoleFamily:
		return ResidentRole(s), true
	default:
		return "", false
	}
}

// Resident binds a user to a housing unit with a role. The domain layer
// does not enforce referential integrity of userID and unitID; the
// service checks the user exists before creating a resident.
type Resident struct {
	id        string
	userID    string
	unitID    string
	role      ResidentRole
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewResident(userID, unitID string, role ResidentRole) *Resident {
	if role == "" {
		role = RoleOwner
	}
	now := time.Now()
	return &Resident{
		id:        NewID(),
		userID:    userID,
		unitID:    unitID,
		role:      role,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

func RestoreResident(id, userID, unitID string, role ResidentRole, active bool, createdAt, updatedAt time.Time) *Resident {
	return &Resident{
		id:        id,
		userID:    userID,
		unitID:    unitID,
		role:      role,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Resident) ID() string           { return r.id }
func (r *Resident) UserID() string       { return r.userID }
func (r *Resident) UnitID() string       { return r.unitID }
func (r *Resident) Role() ResidentRole   { return r.role }
func (r *Resident) IsActive() bool       { return r.active }
func (r *Resident) CreatedAt() time.Time { return r.createdAt }
func (r *Resident) UpdatedAt() time.Time { return r.updatedAt }

func (r *Resident) Equals(other *Resident) bool {
	return other != nil && r.id == other.id
}

func (r *Resident) ChangeUnit(unitID string) {
	r.unitID = unitID
	r.touch()
}

func (r *Resident) ChangeRole(role ResidentRole) {
	r.role = role
	r.touch()
}

func (r *Resident) Activate() {
	r.active = true
	r.touch()
}

func (r *Resident) Deactivate() {
	r.active = false
	r.touch()
}

func (r *Resident) touch() {
	r.updatedAt = time.Now()
}
