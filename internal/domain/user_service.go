package domain

import "context"

// UserLookup is the slice of the user repository the domain service
// needs. Soft-deleted users are already excluded by implementations.
type UserLookup interface {
	FindByEmail(ctx context.Context, email Email) (*User, error)
}

// UserDomainService holds cross-entity user rules that no single entity
// owns.
type UserDomainService struct {
	users UserLookup
}

func NewUserDomainService(users UserLookup) *UserDomainService {
	return &UserDomainService{users: users}
}

// CheckEmailUniqueness fails with a conflict when another live user
// already holds the email. excludeUserID allows a user to keep their own
// email while being edited.
func (s *UserDomainService) CheckEmailUniqueness(ctx context.Context, email Email, excludeUserID string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return NewStorageError(err)
	}
	if existing != nil && (excludeUserID == "" || existing.ID() != excludeUserID) {
		return NewConflictError("email already exists")
	}
	return nil
}

// CanUserBeDeleted allows deletion only of inactive users.
func (s *UserDomainService) CanUserBeDeleted(user *User) bool {
	return !user.IsActive()
}
