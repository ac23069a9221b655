// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// ErrCredentialSystem marks an unexpected failure of the hashing subsystem.
// It is never caused by a wrong password and maps to 500.
var ErrCredentialSystem = errors.New("credential system error")

// BcryptHasher hashes with a random per-call salt embedded in the output.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", oops.Code("CREDENTIAL_SYSTEM").
			With("operation", "hash").
			Wrap(fmt.Errorf("%w: %w", ErrCredentialSystem, err))
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash using bcrypt's constant-time comparison.
// Returns (true, nil) on match, (false, nil) on mismatch, or an error when the hash is unusable.
func (h *BcryptHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, oops.Code("CREDENTIAL_SYSTEM").
			With("operation", "verify").
			Wrap(fmt.Errorf("%w: %w", ErrCredentialSystem, err))
	}
}
