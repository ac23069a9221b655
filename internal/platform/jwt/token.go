// Package jwtmw issues and verifies bearer tokens and resolves the caller's
// identity for every HTTP request.
package jwtmw

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when the token is not a structurally valid JWT.
	ErrMalformedToken = errors.New("malformed token")

	// ErrSignatureInvalid is returned when the signature does not verify against the secret
	// or the token was signed with an algorithm other than HMAC.
	ErrSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers every other verification failure (missing subject, bad claims).
	ErrTokenInvalid = errors.New("token is invalid")
)

// claimPrecision is the granularity of iat/exp. TTLs are configured in milliseconds.
const claimPrecision = time.Millisecond

func init() {
	// NumericDate is decoded through float64, which can land below the encoded
	// instant. One extra order of magnitude on the wire lets expiry round back
	// to the exact millisecond.
	jwt.TimePrecision = time.Microsecond
}

// TokenService issues and verifies HS256 tokens whose subject is the user's email.
// The secret is read-only after construction, so a TokenService is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret and issuing tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token for subject with iat = now and exp = now + ttl,
// now being truncated to the millisecond.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now().Truncate(claimPrecision)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Subject verifies tokenStr and returns its subject claim.
func (s *TokenService) Subject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate reports whether tokenStr is well formed, correctly signed and unexpired.
// It never returns an error; failures are logged at debug level.
func (s *TokenService) Validate(tokenStr string) bool {
	if _, err := s.parse(tokenStr); err != nil {
		slog.Debug("token validation failed", "error", err)
		return false
	}
	return true
}

func (s *TokenService) parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else (including "none") is a forgery attempt.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", ErrTokenInvalid)
	}
	if !s.now().Before(claims.ExpiresAt.Round(claimPrecision)) {
		return nil, fmt.Errorf("%w: %w", ErrTokenExpired, jwt.ErrTokenExpired)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims, nil
}

// classify maps golang-jwt errors onto this package's error set.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
}
