// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"clubhouse/internal/domain/entity"
	domainerrors "clubhouse/internal/domain/errors"
	"clubhouse/internal/domain/repository"
	"clubhouse/internal/domain/service"
	"clubhouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// Register creates a new account. The duplicate check and the insert are two
// separate statements; the storage layer's unique constraints backstop the
// race between them, and a violation at insert surfaces as the same
// duplicate error the pre-check would have produced.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	existing, err := srv.userRepo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing account")
	}
	if existing != nil {
		// Email is checked first; any other hit is attributed to username.
		if existing.Email == input.Email {
			srv.logger.Warn("Registration rejected, duplicate email", slog.String("email", input.Email))

			return nil, domainerrors.ErrDuplicateEmail
		}
		srv.logger.Warn("Registration rejected, duplicate username", slog.String("username", input.Username))

		return nil, domainerrors.ErrDuplicateUsername
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.logger.Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Authenticate looks up the account by username and verifies the password
// against the stored hash. Unknown username and wrong password collapse into
// one invalid-credentials error so login cannot enumerate accounts.
func (srv *accountService) Authenticate(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	srv.logger.Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed, unknown username", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login failed, password mismatch", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.logger.Debug("Login succeeded", slog.Any("userID", user.ID))

	return user, nil
}

// LoadPrincipal turns a stored session identifier back into the full
// account. A missing record is not an error: the session simply no longer
// maps to anyone and the request proceeds anonymous.
func (srv *accountService) LoadPrincipal(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load session principal")
	}

	return user, nil
}
