// Package session holds the client-side credential and the guard that runs before every catalog page.
//
// A [Session] reads and writes the credential through a [Store]. The command line keeps it in SQLite,
// the terminal UI in memory, and the web front end in a signed cookie.
//
// [Guard.Enter] is the single check every page runs first. When the token or user id is missing it
// returns a [RedirectError] naming the login page, and the caller must not contact the backend.
package session
