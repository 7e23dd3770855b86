package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehiclePlate(t *testing.T) {
	t.Run("accepts both plate layouts", func(t *testing.T) {
		for _, raw := range []string{"ABC-1234", "ABC1234", "abc1d23"} {
			_, err := NewVehiclePlate(raw)
			assert.NoError(t, err, "input %q", raw)
		}
	})

	t.Run("normalizes to upper case", func(t *testing.T) {
		plate, err := NewVehiclePlate(" abc1234 ")
		require.NoError(t, err)
		assert.Equal(t, "ABC1234", plate.String())
		assert.Equal(t, "ABC-1234", plate.Format())
	})

	t.Run("rejects malformed plates", func(t *testing.T) {
		for _, raw := range []string{"", "AB-1234", "ABCD123", "1234ABC"} {
			_, err := NewVehiclePlate(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})
}

func TestNewOptionalVehiclePlate(t *testing.T) {
	plate, err := NewOptionalVehiclePlate("")
	require.NoError(t, err)
	assert.True(t, plate.IsZero())

	plate, err = NewOptionalVehiclePlate("XYZ-9876")
	require.NoError(t, err)
	assert.False(t, plate.IsZero())

	_, err = NewOptionalVehiclePlate("nope")
	assert.Error(t, err)
}
