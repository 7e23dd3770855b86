package domain

import "github.com/google/uuid"

// NewID returns a fresh entity identifier. Identifiers are opaque
// strings; storage and transport never parse them.
func NewID() string {
	return uuid.NewString()
}
