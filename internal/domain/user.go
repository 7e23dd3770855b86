package domain

import "time"

// User is an account holder. Soft deletion is represented on User alone;
// a deleted user stays in storage but is excluded from lookups and
// logins.
type User struct {
	id        string
	name      UserName
	email     Email
	password  HashedPassword
	active    bool
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewUser creates an active user with a fresh identifier and current
// timestamps.
func NewUser(name UserName, email Email, password HashedPassword) *User {
	now := time.Now()
	return &User{
		id:        NewID(),
		name:      name,
		email:     email,
		password:  password,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreUser rehydrates a user from storage.
func RestoreUser(id string, name UserName, email Email, password HashedPassword, active bool, createdAt, updatedAt time.Time, deletedAt *time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		password:  password,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (u *User) ID() string               { return u.id }
func (u *User) Name() UserName           { return u.name }
func (u *User) Email() Email             { return u.email }
func (u *User) Password() HashedPassword { return u.password }
func (u *User) IsActive() bool           { return u.active }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }

func (u *User) DeletedAt() *time.Time {
	return u.deletedAt
}

func (u *User) IsDeleted() bool {
	return u.deletedAt != nil
}

// Equals compares by identity, not by state.
func (u *User) Equals(other *User) bool {
	return other != nil && u.id == other.id
}

func (u *User) VerifyPassword(plaintext string) bool {
	return u.password.Compare(plaintext)
}

func (u *User) IsValidForLogin() bool {
	return u.active && !u.IsDeleted()
}

func (u *User) UpdateName(name UserName) {
	u.name = name
	u.touch()
}

func (u *User) UpdateEmail(email Email) {
	u.email = email
	u.touch()
}

func (u *User) UpdatePassword(plaintext string) error {
	password, err := NewHashedPassword(plaintext)
	if err != nil {
		return err
	}
	u.password = password
	u.touch()
	return nil
}

func (u *User) Activate() {
	u.active = true
	u.touch()
}

func (u *User) Deactivate() {
	u.active = false
	u.touch()
}

func (u *User) SoftDelete() {
	now := time.Now()
	u.deletedAt = &now
	u.touch()
}

func (u *User) Restore() {
	u.deletedAt = nil
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now()
}
