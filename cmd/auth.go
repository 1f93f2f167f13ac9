package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/repositories"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account on the backend. It does not log in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator(ctx)
	if err != nil {
		return err
	}

	user, _, err := auth.Register(ctx, models.RegisterRequest{
		Email:    cmd.String("email"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", pages.MsgRegistered)
	r.writePlain("User: %s <%s> (id %s)\n", user.Username, user.Email, user.ID)
	return nil
}

// AuthLogin logs in and stores the returned credential in the credential database.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator(ctx)
	if err != nil {
		return err
	}

	req := models.LoginRequest{Email: cmd.String("email"), Password: cmd.String("password")}
	if _, err := auth.Login(ctx, req); err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", pages.MsgLoginOK)
}

// AuthLogout clears the stored credential unconditionally.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator(ctx)
	if err != nil {
		return err
	}

	if redirect := auth.Logout(ctx); redirect.Cause != nil {
		return fmt.Errorf("failed to clear session: %w", redirect.Cause)
	}

	return r.writePlain("✓ Logged out\n")
}

type authStatus struct {
	LoggedIn  bool               `json:"logged_in"`
	UserID    string             `json:"user_id,omitempty"`
	Token     *session.TokenInfo `json:"token,omitempty"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

// AuthStatus reports the stored credential. Token claims are decoded for display only.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.sessionStore(ctx)
	if err != nil {
		return err
	}

	cred, err := session.New(store).Credential(ctx)
	if err != nil {
		return err
	}

	status := authStatus{LoggedIn: cred.Present(), UserID: cred.UserID}
	if cred.Token != "" {
		if info, err := session.Inspect(cred.Token, r.now()); err == nil {
			status.Token = &info
		}
	}
	if repo, ok := store.(*repositories.SessionRepository); ok {
		if at, found, err := repo.UpdatedAt(ctx, session.KeyToken); err != nil {
			r.logger.Warn("failed to read session timestamp", "err", err)
		} else if found {
			status.UpdatedAt = &at
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.LoggedIn {
		return r.writePlain("✗ Not logged in\nRun 'songhub auth login' to start a session.\n")
	}

	r.writePlain("✓ Logged in\n")
	r.writePlain("User ID: %s\n", status.UserID)
	if status.UpdatedAt != nil {
		r.writePlain("Since: %s\n", status.UpdatedAt.Local().Format(time.DateTime))
	}

	switch {
	case status.Token == nil || !status.Token.JWT:
		r.writePlain("Token: opaque\n")
	case status.Token.ExpiresAt == nil:
		r.writePlain("Token: JWT without expiry\n")
	case status.Token.Expired:
		r.writePlain("Token: expired at %s\n", status.Token.ExpiresAt.Local().Format(time.DateTime))
	default:
		r.writePlain("Token: expires at %s\n", status.Token.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
