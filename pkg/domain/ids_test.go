package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "persona/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})

	t.Run("persona IDs follow the same rules", func(t *testing.T) {
		_, err := ParsePersonaID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		validUUID := uuid.New()
		id, err := ParsePersonaID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, PersonaID(validUUID), id)
	})
}

// TestIDJSONEncoding verifies IDs marshal as UUID strings, not byte arrays.
func TestIDJSONEncoding(t *testing.T) {
	userID := UserID(uuid.New())

	data, err := json.Marshal(userID)
	require.NoError(t, err)
	assert.Equal(t, `"`+userID.String()+`"`, string(data))

	var decoded UserID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, userID, decoded)
}

func TestCaller(t *testing.T) {
	t.Run("user caller carries its identity", func(t *testing.T) {
		userID := UserID(uuid.New())
		c := UserCaller(userID)
		assert.False(t, c.IsSystem())
		assert.Equal(t, userID, c.UserID)
	})

	t.Run("system caller has no user identity", func(t *testing.T) {
		c := SystemCaller()
		assert.True(t, c.IsSystem())
		assert.True(t, c.UserID.IsNil())
	})
}
