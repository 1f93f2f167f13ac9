package pages

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/services"
	"github.com/desertthunder/songhub/internal/session"
)

// Authenticator backs the login and registration forms.
type Authenticator struct {
	guard    *session.Guard
	api      services.CatalogAPI
	homePath string
	logger   *log.Logger
}

// NewAuthenticator creates an [Authenticator]. Successful logins lead to homePath.
func NewAuthenticator(guard *session.Guard, api services.CatalogAPI, homePath string, logger *log.Logger) *Authenticator {
	if homePath == "" {
		homePath = "/"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Authenticator{guard: guard, api: api, homePath: homePath, logger: logger}
}

// Login checks the form, logs in and begins the session. It returns where to go next.
func (a *Authenticator) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	result, err := a.api.Login(ctx, req)
	if err != nil {
		a.logger.Warn("login failed", "email", req.Email, "err", err)
		return "", &Failure{Message: services.Message(err, MsgLoginFailed), Err: err}
	}

	if err := a.guard.Session().Begin(ctx, result.Credential()); err != nil {
		return "", &Failure{Message: MsgLoginFailed, Err: err}
	}

	a.logger.Info("logged in", "user_id", result.UserID, "username", result.Username)
	return a.homePath, nil
}

// Register checks the form and creates an account. It returns the login page on success.
func (a *Authenticator) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user, err := a.api.Register(ctx, req)
	if err != nil {
		a.logger.Warn("registration failed", "email", req.Email, "err", err)
		return nil, "", &Failure{Message: services.Message(err, MsgRegisterFailed), Err: err}
	}

	a.logger.Info("registered", "user_id", user.ID, "username", user.Username)
	return user, a.guard.LoginPath(), nil
}

// Logout clears the session and returns the redirect to the login page.
func (a *Authenticator) Logout(ctx context.Context) *session.RedirectError {
	redirect := a.guard.Logout(ctx)
	if redirect.Cause != nil {
		a.logger.Warn("logout could not clear the session", "err", redirect.Cause)
	}
	return redirect
}
