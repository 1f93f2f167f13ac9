package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/shared"
)

// DefaultLoginPath is where unauthenticated pages are sent.
const DefaultLoginPath = "/login"

// Session is the explicit handle on the credential held in a [Store].
// Login begins it, logout ends it, and every page reads it through a [Guard].
type Session struct {
	store Store
}

// New creates a [Session] over store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Begin stores the credential produced by a successful login.
// A failed write leaves no part of the credential behind.
func (s *Session) Begin(ctx context.Context, cred models.Credential) error {
	if !cred.Present() {
		return fmt.Errorf("%w: login returned no token or user id", shared.ErrMissingCredentials)
	}
	if err := s.store.Set(ctx, KeyToken, cred.Token); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrSessionStore, err)
	}
	if err := s.store.Set(ctx, KeyUserID, cred.UserID); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrSessionStore, errors.Join(err, s.store.Delete(ctx, KeyToken)))
	}
	return nil
}

// End clears the held credential. Both keys are removed even if one removal fails.
func (s *Session) End(ctx context.Context) error {
	errToken := s.store.Delete(ctx, KeyToken)
	errUser := s.store.Delete(ctx, KeyUserID)
	if err := errors.Join(errToken, errUser); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrSessionStore, err)
	}
	return nil
}

// Credential reads the held credential. Missing keys yield empty fields.
func (s *Session) Credential(ctx context.Context) (models.Credential, error) {
	token, err := s.store.Get(ctx, KeyToken)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", shared.ErrSessionStore, err)
	}
	userID, err := s.store.Get(ctx, KeyUserID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", shared.ErrSessionStore, err)
	}
	return models.Credential{Token: token, UserID: userID}, nil
}
