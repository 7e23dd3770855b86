package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := NewEmail("  John.Doe@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", email.String())
		assert.Equal(t, "john.doe", email.LocalPart())
		assert.Equal(t, "example.com", email.Domain())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{"", "not-an-email", "missing@tld", "a b@example.com", "@example.com"} {
			_, err := NewEmail(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})

	t.Run("equal values compare equal", func(t *testing.T) {
		a, err := NewEmail("same@example.com")
		require.NoError(t, err)
		b, err := NewEmail("SAME@example.com")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
