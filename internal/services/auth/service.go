package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	// ErrInvalidCredential is returned when the supplied admin credential
	// does not match the configured secret, or no secret is configured.
	ErrInvalidCredential = errors.New("invalid admin credential")
)

// Config holds configuration for the auth service
type Config struct {
	// AdminSecret is the plaintext admin secret; it is bcrypt-hashed at
	// construction and never retained.
	AdminSecret string
	// AdminSecretHash is a pre-computed bcrypt hash of the admin secret.
	// Takes precedence over AdminSecret when both are set.
	AdminSecretHash string
}

// Service verifies the admin credential guarding destructive operations
// (removing players, discarding pending games).
type Service struct {
	secretHash []byte
}

// New creates an auth service. With neither a secret nor a hash
// configured, every admin check fails: destructive operations are
// disabled rather than open.
func New(cfg Config) (*Service, error) {
	s := &Service{}

	switch {
	case cfg.AdminSecretHash != "":
		s.secretHash = []byte(cfg.AdminSecretHash)
	case cfg.AdminSecret != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminSecret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing admin secret: %w", err)
		}
		s.secretHash = hash
	}

	return s, nil
}

// VerifyAdmin checks a supplied credential against the configured admin
// secret, returning ErrInvalidCredential on mismatch.
func (s *Service) VerifyAdmin(credential string) error {
	if len(s.secretHash) == 0 {
		return ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(credential)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	VerifyAdmin(credential string) error
}

var _ ServiceInterface = (*Service)(nil)
