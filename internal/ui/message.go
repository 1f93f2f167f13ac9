package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPageEntered MsgKind = iota
	MsgLoggedIn
	MsgRegistered
	MsgLoggedOut
	MsgSongCreated
	MsgSongRemoved
	MsgRefreshed
)

type pageResult struct {
	page *pages.Page
	err  error
}

type createResult struct {
	song *models.Song
	err  error
}

type removeResult struct {
	name   string
	detail string
	err    error
}

type registerResult struct {
	user *models.User
	err  error
}

// pageEnteredMsg is the constructor for [MsgPageEntered]
func pageEnteredMsg(page *pages.Page, err error) Msg {
	return Msg{kind: MsgPageEntered, data: pageResult{page, err}}
}

// loggedInMsg is the constructor for [MsgLoggedIn]
func loggedInMsg(err error) Msg {
	return Msg{kind: MsgLoggedIn, data: err}
}

// registeredMsg is the constructor for [MsgRegistered]
func registeredMsg(user *models.User, err error) Msg {
	return Msg{kind: MsgRegistered, data: registerResult{user, err}}
}

// loggedOutMsg is the constructor for [MsgLoggedOut]
func loggedOutMsg(cause error) Msg {
	return Msg{kind: MsgLoggedOut, data: cause}
}

// songCreatedMsg is the constructor for [MsgSongCreated]
func songCreatedMsg(song *models.Song, err error) Msg {
	return Msg{kind: MsgSongCreated, data: createResult{song, err}}
}

// songRemovedMsg is the constructor for [MsgSongRemoved]
func songRemovedMsg(name, detail string, err error) Msg {
	return Msg{kind: MsgSongRemoved, data: removeResult{name, detail, err}}
}

// refreshedMsg is the constructor for [MsgRefreshed]
func refreshedMsg(err error) Msg {
	return Msg{kind: MsgRefreshed, data: err}
}

func errorOf(data any) error {
	err, _ := data.(error)
	return err
}
