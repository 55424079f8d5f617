package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// Errors
var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// LockHasher hashes protection lock passwords with bcrypt. In plaintext mode
// it stores passwords the way older clients do so they can still unlock.
type LockHasher struct {
	cost      int
	plaintext bool
}

// Config holds configuration for the lock hasher
type Config struct {
	Cost int
	// Plaintext writes lock passwords unhashed under _password
	Plaintext bool
}

// DefaultConfig returns the default bcrypt cost
func DefaultConfig() Config {
	return Config{Cost: bcrypt.DefaultCost}
}

// NewLockHasher creates a LockHasher; out-of-range costs fall back to the default
func NewLockHasher(cfg Config) *LockHasher {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		cfg.Cost = bcrypt.DefaultCost
	}
	if cfg.Plaintext {
		logger.Warn("Protection lock passwords will be stored in plaintext")
	}
	return &LockHasher{cost: cfg.Cost, plaintext: cfg.Plaintext}
}

// Hash returns the bcrypt hash of password
func (h *LockHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Seal builds the locked protection record for players
func (h *LockHasher) Seal(players []string, password string) (models.ProtectionRecord, error) {
	if password == "" {
		return models.ProtectionRecord{}, ErrEmptyPassword
	}
	if h.plaintext {
		return models.PlaintextLockedProtection(players, password), nil
	}
	hash, err := h.Hash(password)
	if err != nil {
		return models.ProtectionRecord{}, err
	}
	return models.LockedProtection(players, hash), nil
}

// Verify checks password against a locked record. Records written by older
// clients carry a plaintext password instead of a hash and are compared directly.
func (h *LockHasher) Verify(rec models.ProtectionRecord, password string) bool {
	if rec.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) == nil
	}
	if rec.LegacyPassword != "" {
		logger.Warn("Verifying protection lock against legacy plaintext password")
		return subtle.ConstantTimeCompare([]byte(rec.LegacyPassword), []byte(password)) == 1
	}
	return false
}
