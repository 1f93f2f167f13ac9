package services

import (
	"context"

	"github.com/desertthunder/songhub/internal/models"
)

// CatalogAPI is the remote song catalog as seen by the client.
//
// Song operations take the credential explicitly; the client never reads the session itself.
type CatalogAPI interface {
	// Login exchanges email and password for an access token.
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)

	// Register creates an account.
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	// ListSongs returns every song owned by the credential's user.
	ListSongs(ctx context.Context, cred models.Credential) ([]models.Song, error)

	// CreateSong stores song and returns the record as the backend saved it.
	CreateSong(ctx context.Context, cred models.Credential, song models.Song) (*models.Song, error)

	// RemoveSong deletes the user's songs named name and returns the backend's confirmation message.
	RemoveSong(ctx context.Context, cred models.Credential, name string) (string, error)
}
