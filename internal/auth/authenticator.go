// Package auth handles organizer accounts: credential checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/secretsanta/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new organizer account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.Organizer, error)

	// Authenticate verifies the credentials and returns the organizer if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Organizer, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
