package domain

import "github.com/alexedwards/argon2id"

const passwordMinLength = 6

// HashedPassword holds a one-way argon2id hash. The plaintext is never
// stored and the hash is never reversible.
type HashedPassword struct {
	hash string
}

// NewHashedPassword hashes a plaintext password after enforcing the
// minimum length.
func NewHashedPassword(plaintext string) (HashedPassword, error) {
	if plaintext == "" {
		return HashedPassword{}, NewValidationError("password is required")
	}
	if len(plaintext) < passwordMinLength {
		return HashedPassword{}, NewValidationErrorf("password must be at least %d characters long", passwordMinLength)
	}

	hash, err := argon2id.CreateHash(plaintext, argon2id.DefaultParams)
	if err != nil {
		return HashedPassword{}, NewValidationError("failed to hash password")
	}

	return HashedPassword{hash: hash}, nil
}

// RestoreHashedPassword wraps an already-hashed value loaded from storage.
func RestoreHashedPassword(hash string) (HashedPassword, error) {
	if hash == "" {
		return HashedPassword{}, NewValidationError("hashed password is required")
	}
	return HashedPassword{hash: hash}, nil
}

// Compare reports whether the plaintext matches the stored hash. Empty
// or malformed input verifies to false, never to an error.
func (p HashedPassword) Compare(plaintext string) bool {
	if plaintext == "" {
		return false
	}
	match, err := argon2id.ComparePasswordAndHash(plaintext, p.hash)
	return err == nil && match
}

func (p HashedPassword) Hash() string {
	return p.hash
}
