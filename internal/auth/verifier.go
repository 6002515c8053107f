package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"client-portal-api/internal/config"
)

// Verifier decides whether a submitted credential matches the stored one.
// Callers never compare credentials themselves so the strategy can change without touching them.
type Verifier interface {
	Verify(stored, submitted string) bool
}

// CaseInsensitiveVerifier upper-cases both sides and compares for exact equality.
type CaseInsensitiveVerifier struct{}

func (CaseInsensitiveVerifier) Verify(stored, submitted string) bool {
	return strings.ToUpper(stored) == strings.ToUpper(submitted)
}

// ConstantTimeVerifier is CaseInsensitiveVerifier without the early exit on the first differing byte.
type ConstantTimeVerifier struct{}

func (ConstantTimeVerifier) Verify(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(stored)), []byte(strings.ToUpper(submitted))) == 1
}

// PlaintextVerifier compares byte for byte.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// BcryptVerifier treats the stored value as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, submitted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

// NewPasscodeVerifier returns the verifier for auth.passcode_mode.
func NewPasscodeVerifier(mode string) (Verifier, error) {
	switch mode {
	case config.PasscodeModeCaseInsensitive, "":
		return CaseInsensitiveVerifier{}, nil
	case config.PasscodeModeConstantTime:
		return ConstantTimeVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown passcode mode %q", mode)
	}
}

// NewPasswordVerifier returns the verifier for auth.admin_password_mode.
func NewPasswordVerifier(mode string) (Verifier, error) {
	switch mode {
	case config.PasswordModePlaintext, "":
		return PlaintextVerifier{}, nil
	case config.PasswordModeBcrypt:
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown admin password mode %q", mode)
	}
}

// HashPassword prepares a password for storage under the given mode.
func HashPassword(mode, password string) (string, error) {
	if mode != config.PasswordModeBcrypt {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
