package domain

import "strings"

const (
	userNameMinLength    = 2
	visitorNameMinLength = 3
	nameMaxLength        = 100
)

// UserName is a trimmed display name between 2 and 100 characters.
type UserName struct {
	value string
}

func NewUserName(raw string) (UserName, error) {
	trimmed, err := boundedName(raw, userNameMinLength)
	if err != nil {
		return UserName{}, err
	}
	return UserName{value: trimmed}, nil
}

func (n UserName) String() string {
	return n.value
}

func (n UserName) FirstName() string {
	return strings.Split(n.value, " ")[0]
}

func (n UserName) LastName() string {
	parts := strings.Split(n.value, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}

// VisitorName is a trimmed display name between 3 and 100 characters.
type VisitorName struct {
	value string
}

func NewVisitorName(raw string) (VisitorName, error) {
	trimmed, err := boundedName(raw, visitorNameMinLength)
	if err != nil {
		return VisitorName{}, err
	}
	return VisitorName{value: trimmed}, nil
}

func (n VisitorName) String() string {
	return n.value
}

func boundedName(raw string, min int) (string, error) {
	if raw == "" {
		return "", NewValidationError("name is required")
	}

	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < min {
		return "", NewValidationErrorf("name must be at least %d characters long", min)
	}
	if len(trimmed) > nameMaxLength {
		return "", NewValidationErrorf("name must be at most %d characters long", nameMaxLength)
	}

	return trimmed, nil
}
