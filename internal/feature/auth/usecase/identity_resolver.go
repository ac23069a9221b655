package usecase

import (
	"context"
	"errors"
	"fmt"

	"yoga_backend/internal/feature/auth/domain/entity"
	jwtmw "yoga_backend/internal/platform/jwt"
)

// UserFinder looks users up by email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// IdentityResolver loads the live authorization identity for a token subject.
type IdentityResolver struct {
	users UserFinder
}

var _ jwtmw.IdentityResolver = (*IdentityResolver)(nil)

// NewIdentityResolver creates an IdentityResolver reading from users.
func NewIdentityResolver(users UserFinder) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// LoadByEmail returns the identity of the user with email, or ErrIdentityNotFound.
func (r *IdentityResolver) LoadByEmail(ctx context.Context, email string) (*jwtmw.Identity, error) {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: User Not Found with email: %s", ErrIdentityNotFound, email)
		}
		return nil, err
	}
	return &jwtmw.Identity{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.Password,
		Admin:        user.Admin,
	}, nil
}
