package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
)

var (
	_ list.Item = menuItem{}
	_ list.Item = songItem{}
)

// menuItem is one entry of the main menu. An empty kind is the logout entry.
type menuItem struct {
	kind  pages.Kind
	title string
	desc  string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

var menuDescriptions = map[pages.Kind]string{
	pages.KindSongs:  "List every song in your catalog",
	pages.KindAdd:    "Add a song to your catalog",
	pages.KindRemove: "Remove songs by name",
	pages.KindFind:   "Pick up to three songs matching a filter",
}

func menuItems() []list.Item {
	items := []list.Item{}
	for _, k := range pages.Kinds {
		if k == pages.KindMain {
			continue
		}
		items = append(items, menuItem{kind: k, title: k.Title(), desc: menuDescriptions[k]})
	}
	return append(items, menuItem{title: "Logout", desc: "Clear the session and return to login"})
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Name }
func (i songItem) Title() string       { return i.song.Name }
func (i songItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.song.Genre, i.song.Language, i.song.Keyword)
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}
