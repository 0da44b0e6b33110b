package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid identifier", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Len(t, id.String(), 36)
	})

	t.Run("should create distinct identifiers", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.False(t, first.IsEqual(second))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse the canonical representation", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should round trip through String", func(t *testing.T) {
		original := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(original.String())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(parsed))
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create an identifier from 16 bytes", func(t *testing.T) {
		raw := kernel.NewUUID().Bytes()

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.Equal(t, raw, id.Bytes())
	})

	t.Run("should reject a slice of the wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		var zero uuid.UUID

		_, err := kernel.UUIDFromBytes(zero[:])

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should fail for the zero value", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	same := id

	assert.True(t, id.IsEqual(same))
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}
