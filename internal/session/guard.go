package session

import (
	"context"
	"errors"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/shared"
)

// RedirectError tells a page to leave for Target instead of rendering.
type RedirectError struct {
	Target string
	Cause  error
}

func (e *RedirectError) Error() string {
	if e.Cause != nil {
		return "redirect to " + e.Target + ": " + e.Cause.Error()
	}
	return "redirect to " + e.Target + ": " + shared.ErrNotAuthenticated.Error()
}

// Unwrap exposes [shared.ErrNotAuthenticated] and the underlying cause.
func (e *RedirectError) Unwrap() []error {
	if e.Cause == nil {
		return []error{shared.ErrNotAuthenticated}
	}
	return []error{shared.ErrNotAuthenticated, e.Cause}
}

// AsRedirect returns the [RedirectError] in err's chain, if any.
func AsRedirect(err error) (*RedirectError, bool) {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return redirect, true
	}
	return nil, false
}

// Guard runs before any page operation that reads the catalog.
//
// It checks presence only: a stale or expired token passes and fails later at the backend.
type Guard struct {
	session   *Session
	loginPath string
}

// NewGuard creates a [Guard] that sends unauthenticated callers to loginPath.
func NewGuard(s *Session, loginPath string) *Guard {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return &Guard{session: s, loginPath: loginPath}
}

// LoginPath returns the redirect target used when the check fails.
func (g *Guard) LoginPath() string { return g.loginPath }

// Session returns the guarded session.
func (g *Guard) Session() *Session { return g.session }

// Enter returns the held credential, or a [*RedirectError] when the token or user id is missing.
// A store that cannot be read is treated as unauthenticated.
func (g *Guard) Enter(ctx context.Context) (models.Credential, error) {
	cred, err := g.session.Credential(ctx)
	if err != nil {
		return models.Credential{}, &RedirectError{Target: g.loginPath, Cause: err}
	}
	if !cred.Present() {
		return models.Credential{}, &RedirectError{Target: g.loginPath}
	}
	return cred, nil
}

// Logout ends the session and always returns the redirect to the login page.
// A store failure is reported through the redirect's cause.
func (g *Guard) Logout(ctx context.Context) *RedirectError {
	if err := g.session.End(ctx); err != nil {
		return &RedirectError{Target: g.loginPath, Cause: err}
	}
	return &RedirectError{Target: g.loginPath}
}
