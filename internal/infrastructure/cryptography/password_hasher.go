package cryptography

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
)

// legacyHashLength is the length of a hex encoded SHA-256 digest
const legacyHashLength = sha256.Size * 2

// bcryptHasher implements users.PasswordHasher with bcrypt over salt + password
type bcryptHasher struct {
	salt string
	cost int
}

// NewPasswordHasher creates a PasswordHasher that prefixes every password with salt.
// A cost of 0 selects bcrypt.DefaultCost.
func NewPasswordHasher(salt string, cost int) (users.PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &bcryptHasher{salt: salt, cost: cost}, nil
}

// Hash returns a bcrypt hash of the salted password
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(h.salt+password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password and salt exceed 72 bytes: %w", err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash or a legacy unsalted SHA-256 hex digest.
// Legacy matches and bcrypt hashes with a different cost report needsRehash.
func (h *bcryptHasher) Verify(hash, password string) (bool, bool) {
	if isLegacyHash(hash) {
		digest := sha256.Sum256([]byte(password))
		expected := hex.EncodeToString(digest[:])
		match := subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(expected)) == 1
		return match, match
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(h.salt+password)); err != nil {
		return false, false
	}

	cost, err := bcrypt.Cost([]byte(hash))
	return true, err != nil || cost != h.cost
}

func isLegacyHash(hash string) bool {
	if len(hash) != legacyHashLength {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
