package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
)

// ErrUnknownUser is returned by UserRepository implementations when no user
// exists for a username. The verifier folds it into ErrInvalidCredentials
// before it can reach a caller.
var ErrUnknownUser = errors.New("user not found")

// UserRepository provides read-only access to operator accounts.
type UserRepository interface {
	// GetByUsername returns the user for a username, or ErrUnknownUser.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Verifier authenticates operators from Basic-Auth headers.
type Verifier struct {
	users UserRepository
}

// NewVerifier creates a credential verifier backed by the given repository.
func NewVerifier(users UserRepository) *Verifier {
	return &Verifier{users: users}
}

// VerifyBasicAuth decodes an Authorization header and verifies the embedded
// credentials, returning the authenticated user's id.
func (v *Verifier) VerifyBasicAuth(ctx context.Context, header string) (uuid.UUID, error) {
	creds, err := ParseBasicAuth(header)
	if err != nil {
		return uuid.Nil, err
	}
	return v.Verify(ctx, creds)
}

// Verify checks a username/password pair against the stored argon2id hash.
// An unknown username and a wrong password both return ErrInvalidCredentials.
func (v *Verifier) Verify(ctx context.Context, creds Credentials) (uuid.UUID, error) {
	user, err := v.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return uuid.Nil, ErrInvalidCredentials
		}
		return uuid.Nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := VerifyPassword(creds.Password, user.PasswordHash); err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}
