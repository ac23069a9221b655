// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that already belongs to a user.
	ErrEmailTaken = errors.New("email is already taken")

	// ErrAuthenticationFailed is returned for an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrAuthenticationFailed = errors.New("bad credentials")

	// ErrIdentityNotFound is returned by the identity resolver when a token subject has no user.
	ErrIdentityNotFound = errors.New("identity not found")
)
