package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("accepts a valid address", func(t *testing.T) {
		e, err := NewEmail("john.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", e.String())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		e, err := NewEmail("  jane@example.com  ")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", e.String())
	})

	t.Run("rejects empty and blank input as required", func(t *testing.T) {
		for _, raw := range []string{"", "   "} {
			_, err := NewEmail(raw)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.EqualError(t, err, "email is required")
		}
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{
			"plainaddress",
			"missing-domain@",
			"@missing-local.com",
			"no-dot@domain",
			"spaces in@local.com",
			"two@@ats.com",
		} {
			_, err := NewEmail(raw)
			require.Error(t, err, "input %q", raw)
			assert.EqualError(t, err, "email must be a valid address")
		}
	})

	t.Run("equality is case-sensitive", func(t *testing.T) {
		a, err := NewEmail("user@example.com")
		require.NoError(t, err)
		b, err := NewEmail("user@example.com")
		require.NoError(t, err)
		c, err := NewEmail("User@example.com")
		require.NoError(t, err)

		assert.True(t, a.Equals(b))
		assert.False(t, a.Equals(c))
	})
}
