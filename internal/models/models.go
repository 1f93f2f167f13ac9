package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/songhub/internal/shared"
	"github.com/samber/lo"
)

// Genres lists the accepted values for [Song.Genre].
var Genres = []string{"Pop", "Hip Hop", "R&B", "Dance", "Classic Rock"}

// Languages lists the accepted values for [Song.Language].
var Languages = []string{
	"Mandarin Chinese", "English", "Spanish", "Portuguese", "Russian",
	"Hindi", "Japanese", "Arabic", "French", "Thai",
}

// Keywords lists the accepted mood keywords for [Song.Keyword].
var Keywords = []string{"Joy", "Beauty", "Relaxation", "Sadness", "Dreaminess", "Scariness", "Feeling Pumped Up"}

// MsgFieldsRequired is shown when a form is submitted with an empty field.
const MsgFieldsRequired = "All fields are required."

// UserID identifies a user on the catalog backend.
//
// The backend encodes it as a JSON number; clients that stored it as text send it back as a string.
// Both forms decode to the same value.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: user id %s", shared.ErrInvalidInput, data)
	}
	*u = UserID(n.String())
	return nil
}

func (u UserID) String() string { return string(u) }

// Song is a single record in a user's catalog.
//
// ID, UserID and AddedAt are assigned by the backend and carried through; records are matched by Name only.
type Song struct {
	ID       int    `json:"id,omitempty"`
	UserID   UserID `json:"user_id,omitempty"`
	Name     string `json:"songname"`
	Genre    string `json:"songtype"`
	Language string `json:"language"`
	Keyword  string `json:"keyword"`
	AddedAt  string `json:"added_at,omitempty"`
}

// ValidationError is returned when user input is rejected before any request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return shared.ErrValidation }

// NewValidationError builds a [ValidationError] with the given user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Validate checks that all four fields are present and that enumerated fields hold known values.
func (s Song) Validate() error {
	if Blank(s.Name, s.Genre, s.Language, s.Keyword) {
		return NewValidationError(MsgFieldsRequired)
	}
	if !lo.Contains(Genres, s.Genre) {
		return NewValidationError(fmt.Sprintf("Unknown genre %q.", s.Genre))
	}
	if !lo.Contains(Languages, s.Language) {
		return NewValidationError(fmt.Sprintf("Unknown language %q.", s.Language))
	}
	if !lo.Contains(Keywords, s.Keyword) {
		return NewValidationError(fmt.Sprintf("Unknown keyword %q.", s.Keyword))
	}
	return nil
}

// Blank reports whether any of the values is empty after trimming whitespace.
func Blank(values ...string) bool {
	return lo.SomeBy(values, func(v string) bool { return strings.TrimSpace(v) == "" })
}

// Credential is the client-held proof of authentication.
type Credential struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Present reports whether both the token and the user id are set.
// A credential missing either is treated as absent.
func (c Credential) Present() bool {
	return c.Token != "" && c.UserID != ""
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both fields.
func (r LoginRequest) Validate() error {
	if Blank(r.Email, r.Password) {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}

// RegisterRequest is the body of an account creation call.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires all three fields.
func (r RegisterRequest) Validate() error {
	if Blank(r.Email, r.Username, r.Password) {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      UserID `json:"user_id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Credential converts the login result into the credential held by the session.
func (r LoginResult) Credential() Credential {
	return Credential{Token: r.AccessToken, UserID: r.UserID.String()}
}

// User is an account returned by the registration call.
type User struct {
	ID        UserID `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}
