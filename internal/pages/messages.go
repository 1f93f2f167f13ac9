package pages

import (
	"errors"

	"github.com/desertthunder/songhub/internal/models"
)

// Messages shown to the user.
const (
	MsgFetchFailed    = "Failed to fetch songs from the server."
	MsgAddFailed      = "Failed to add song"
	MsgRemoveFailed   = "Failed to remove song"
	MsgNameRequired   = "Please enter a song name to remove."
	MsgLoginFailed    = "Login failed"
	MsgLoginOK        = "Login successful!"
	MsgRegisterFailed = "Registration failed"
	MsgRegistered     = "Registration successful! Please login."
	MsgNoSongs        = "No songs found."
)

// Failure is a backend or network error reduced to the message a page shows.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

// Message returns the text a page shows for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Message
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	return err.Error()
}
