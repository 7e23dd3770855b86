package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Run("strips formatting characters", func(t *testing.T) {
		doc, err := NewDocument("123.456.789-00")
		require.NoError(t, err)
		assert.Equal(t, "12345678900", doc.String())
	})

	t.Run("rejects fewer than eleven digits", func(t *testing.T) {
		_, err := NewDocument("123456")
		assert.Error(t, err)

		_, err = NewDocument("")
		assert.Error(t, err)
	})

	t.Run("format round trip", func(t *testing.T) {
		doc, err := NewDocument("12345678900")
		require.NoError(t, err)
		assert.Equal(t, "123.456.789-00", doc.Format())
	})
}
