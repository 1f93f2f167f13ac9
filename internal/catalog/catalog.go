package catalog

import (
	"slices"
	"sync"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/samber/lo"
)

// Catalog is the in-memory copy of one user's songs held by a page.
//
// The mutex keeps the slice consistent under concurrent commands; it imposes no ordering
// between racing fetches, so the last one to complete wins.
type Catalog struct {
	mu    sync.RWMutex
	songs []models.Song
}

// New creates a [Catalog] holding songs.
func New(songs ...models.Song) *Catalog {
	return &Catalog{songs: slices.Clone(songs)}
}

// Songs returns a copy of the held songs in order.
func (c *Catalog) Songs() []models.Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.songs)
}

// Len returns the number of held songs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.songs)
}

// Replace swaps the held songs for the result of a fetch.
func (c *Catalog) Replace(songs []models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs = slices.Clone(songs)
}

// Append adds a song returned by a successful create.
func (c *Catalog) Append(song models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs = append(c.songs, song)
}

// RemoveByName drops every song whose name equals name exactly and returns how many were removed.
func (c *Catalog) RemoveByName(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := lo.Reject(c.songs, func(s models.Song, _ int) bool { return s.Name == name })
	removed := len(c.songs) - len(kept)
	c.songs = kept
	return removed
}
