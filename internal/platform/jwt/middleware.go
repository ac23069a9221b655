package jwtmw

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yoga_backend/internal/platform/metrics"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the subset of TokenService the filter needs.
type TokenVerifier interface {
	Validate(token string) bool
	Subject(token string) (string, error)
}

// IdentityResolver loads the live identity for a token subject.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (auth usecase).
type IdentityResolver interface {
	LoadByEmail(ctx context.Context, email string) (*Identity, error)
}

// Outcome is the result of resolving a request's credentials.
type Outcome int

const (
	// Anonymous means no usable bearer token was presented.
	Anonymous Outcome = iota
	// Authenticated means the token verified and the subject resolved to a user.
	Authenticated
	// Failed means resolution errored after the token validated; the request continues anonymously.
	Failed
)

// String returns the metric label for o.
func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Failed:
		return "error"
	default:
		return "anonymous"
	}
}

// Resolution is what Authenticator.Resolve decided for one request.
// Identity is set only when Outcome is Authenticated; Err only when Outcome is Failed.
type Resolution struct {
	Outcome  Outcome
	Identity *Identity
	Err      error
}

// Authenticator turns an Authorization header into a Resolution.
type Authenticator struct {
	tokens   TokenVerifier
	resolver IdentityResolver
}

// NewAuthenticator creates an Authenticator backed by tokens and resolver.
func NewAuthenticator(tokens TokenVerifier, resolver IdentityResolver) *Authenticator {
	return &Authenticator{tokens: tokens, resolver: resolver}
}

// Resolve runs the per-request state machine: extract, validate, resolve subject, load identity.
// It never fails the request; every error becomes a Failed resolution.
func (a *Authenticator) Resolve(ctx context.Context, header string) (res Resolution) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return Resolution{Outcome: Anonymous}
	}
	tokenStr := strings.TrimPrefix(header, bearerPrefix)

	if !a.tokens.Validate(tokenStr) {
		return Resolution{Outcome: Anonymous}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Resolution{Outcome: Failed, Err: fmt.Errorf("panic while resolving identity: %v", r)}
		}
	}()

	subject, err := a.tokens.Subject(tokenStr)
	if err != nil {
		return Resolution{Outcome: Failed, Err: fmt.Errorf("resolve subject: %w", err)}
	}

	identity, err := a.resolver.LoadByEmail(ctx, subject)
	if err != nil {
		return Resolution{Outcome: Failed, Err: fmt.Errorf("load identity for %q: %w", subject, err)}
	}
	if identity == nil {
		return Resolution{Outcome: Failed, Err: fmt.Errorf("load identity for %q: resolver returned nil", subject)}
	}
	return Resolution{Outcome: Authenticated, Identity: identity}
}

// Authenticate returns a Gin middleware that attaches the caller's identity to the
// request context when a valid bearer token is presented. It never aborts: routes
// that need an identity enforce it with RequireAuth or RequireAdmin.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := a.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		metrics.AuthOutcomes.WithLabelValues(res.Outcome.String()).Inc()

		switch res.Outcome {
		case Authenticated:
			c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), res.Identity))
		case Failed:
			slog.Warn("cannot set user authentication", "error", res.Err, "remote_addr", c.ClientIP())
		}

		c.Next()
	}
}

// RequireAuth rejects requests without an attached identity with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFromContext(c.Request.Context()); !ok {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admin identities with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFromContext(c.Request.Context())
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !id.Admin {
			slog.Warn("admin route denied", "user_id", id.UserID, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  http.StatusForbidden,
				"error":   "Forbidden",
				"message": "Admin privileges are required to access this resource",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"error":   "Unauthorized",
		"message": "Full authentication is required to access this resource",
		"path":    c.Request.URL.Path,
	})
}
