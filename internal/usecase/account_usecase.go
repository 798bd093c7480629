// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"clubhouse/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the validated, normalized data required to register
// a new account. The password is still plaintext at this point; hashing is
// the usecase's responsibility.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// LoginInput defines the credentials submitted by the login form.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *entity.User
}

// AccountUsecase defines the account-related business operations.
// This is the contract the delivery layer depends on.
type AccountUsecase interface {
	// Register creates a new account after the duplicate check passes.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Authenticate verifies a username/password pair and yields the full
	// account record as the authenticated principal.
	Authenticate(ctx context.Context, input LoginInput) (*entity.User, error)

	// LoadPrincipal resolves a stored session identifier back into the full
	// account. A nil user with a nil error means the account no longer
	// exists and the request proceeds as unauthenticated.
	LoadPrincipal(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
