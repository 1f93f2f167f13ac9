// Package models defines the records exchanged with the song catalog backend.
//
// The package contains two categories of types:
//
// 1. Catalog records
//   - [Song] : A single catalog entry with name, genre, language and mood keyword
//   - [Genres], [Languages], [Keywords] : The enumerations a [Song] is validated against
//
// 2. Authentication records
//   - [Credential] : The token and user id a client holds after logging in
//   - [LoginRequest], [RegisterRequest] : Form bodies for the account endpoints
//   - [LoginResult], [User] : Backend responses to those forms
//
// Input checks return a [ValidationError], which wraps shared.ErrValidation and carries the message shown to the user.
package models
