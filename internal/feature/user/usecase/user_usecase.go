// Package usecase implements account reads and owner-only account deletion.
package usecase

import (
	"context"
	"errors"
	"log/slog"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	authusecase "yoga_backend/internal/feature/auth/usecase"
	jwtmw "yoga_backend/internal/platform/jwt"
)

var (
	// ErrUserNotFound is the auth feature's sentinel, re-exported for handlers of this feature.
	ErrUserNotFound = authusecase.ErrUserNotFound
	// ErrNotOwner is returned when the requester tries to delete another user's account.
	ErrNotOwner = errors.New("requester does not own this account")
)

// UserRepository abstracts the persistence layer for user accounts.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserUsecase serves the /api/user endpoints.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// FindByID returns the user with id or ErrUserNotFound.
func (u *UserUsecase) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// Delete removes account id on behalf of requester.
// The account is looked up first; only its owner may delete it.
func (u *UserUsecase) Delete(ctx context.Context, requester *jwtmw.Identity, id uint) error {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if requester == nil || requester.UserID != user.ID {
		return ErrNotOwner
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted own account", "user_id", id, "email", user.Email)
	return nil
}
