package catalog

import (
	"strings"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/samber/lo"
)

// Criteria narrows a catalog. Empty fields match everything.
type Criteria struct {
	Name     string `json:"name,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Language string `json:"language,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Name == "" && c.Genre == "" && c.Language == ""
}

// Match reports whether song satisfies every set criterion.
//
// Name is a case-insensitive substring match; genre and language must match exactly.
func (c Criteria) Match(song models.Song) bool {
	if c.Name != "" && !strings.Contains(strings.ToLower(song.Name), strings.ToLower(c.Name)) {
		return false
	}
	if c.Genre != "" && song.Genre != c.Genre {
		return false
	}
	if c.Language != "" && song.Language != c.Language {
		return false
	}
	return true
}

// Filter returns the songs matching criteria, keeping their order.
func Filter(songs []models.Song, criteria Criteria) []models.Song {
	return lo.Filter(songs, func(s models.Song, _ int) bool { return criteria.Match(s) })
}
