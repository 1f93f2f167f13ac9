// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the catalog screens:
//  1. [LoginView] and [RegisterView] : Authenticate against the backend
//  2. [MenuView] : Pick a screen or log out
//  3. [SongsView] : Browse the fetched catalog
//  4. [AddView] : Create a song and watch it join the list
//  5. [RemoveView] : Remove every song with a given name
//  6. [FindView] : Filter the catalog and show a random sample of the matches
//
// Every screen is backed by a [pages.Page]. Entering one runs the session guard in a command; a failed
// guard lands on the login view without any fetch. Results come back through the Msg union type.
//
// Keyboard navigation uses vim-style bindings in lists (j/k, enter, esc, q) and tab/shift+tab in forms,
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
