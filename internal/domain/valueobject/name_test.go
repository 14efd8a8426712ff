package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	t.Run("accepts and trims a valid name", func(t *testing.T) {
		n, err := NewName("  John Doe ")
		require.NoError(t, err)
		assert.Equal(t, "John Doe", n.String())
	})

	t.Run("rejects empty and blank input as required", func(t *testing.T) {
		for _, raw := range []string{"", "    "} {
			_, err := NewName(raw)
			require.Error(t, err)
			assert.EqualError(t, err, "name is required")
		}
	})

	t.Run("rejects names shorter than 2 characters after trimming", func(t *testing.T) {
		_, err := NewName(" a ")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.EqualError(t, err, "name must be at least 2 characters")
	})

	t.Run("accepts exactly 2 characters", func(t *testing.T) {
		n, err := NewName("Jo")
		require.NoError(t, err)
		assert.Equal(t, "Jo", n.String())
	})
}
