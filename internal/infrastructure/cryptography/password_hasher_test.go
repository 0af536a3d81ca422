//go:build unit
// +build unit

package cryptography

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupPasswordHasher(t *testing.T, salt string) *bcryptHasher {
	t.Helper()
	hasher, err := NewPasswordHasher(salt, bcrypt.MinCost)
	require.NoError(t, err)
	return hasher.(*bcryptHasher)
}

func TestPasswordHasher(t *testing.T) {
	hasher := setupPasswordHasher(t, "pepper")

	t.Run("HashAndVerify", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))

		match, needsRehash := hasher.Verify(hash, "s3cret")
		assert.True(t, match)
		assert.False(t, needsRehash)

		match, _ = hasher.Verify(hash, "wrong")
		assert.False(t, match)
	})

	t.Run("SaltIsPartOfTheHash", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		require.NoError(t, err)

		other := setupPasswordHasher(t, "different")
		match, _ := other.Verify(hash, "s3cret")
		assert.False(t, match)
	})

	t.Run("LegacySHA256", func(t *testing.T) {
		digest := sha256.Sum256([]byte("legacy-pass"))
		legacy := hex.EncodeToString(digest[:])

		match, needsRehash := hasher.Verify(legacy, "legacy-pass")
		assert.True(t, match)
		assert.True(t, needsRehash)

		match, needsRehash = hasher.Verify(legacy, "nope")
		assert.False(t, match)
		assert.False(t, needsRehash)
	})

	t.Run("CostChangeNeedsRehash", func(t *testing.T) {
		stronger, err := NewPasswordHasher("pepper", bcrypt.MinCost+1)
		require.NoError(t, err)
		hash, err := stronger.Hash("s3cret")
		require.NoError(t, err)

		match, needsRehash := hasher.Verify(hash, "s3cret")
		assert.True(t, match)
		assert.True(t, needsRehash)
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("a", 80))
		assert.Error(t, err)
	})

	t.Run("MalformedHash", func(t *testing.T) {
		match, needsRehash := hasher.Verify("not-a-hash", "s3cret")
		assert.False(t, match)
		assert.False(t, needsRehash)
	})
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	_, err := NewPasswordHasher("", bcrypt.MaxCost+1)
	assert.Error(t, err)

	hasher, err := NewPasswordHasher("", 0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, hasher.(*bcryptHasher).cost)
}
