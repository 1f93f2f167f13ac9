package catalog

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/songhub/internal/models"
)

// DefaultDisplaySize is how many songs a search shows.
const DefaultDisplaySize = 3

// Result is the outcome of one search.
type Result struct {
	Criteria  Criteria      `json:"criteria"`
	Filtered  []models.Song `json:"filtered"`
	Display   []models.Song `json:"display"`
	NoMatches bool          `json:"no_matches"`
}

// Sampler picks the songs a search displays.
//
// The random source is injected so tests can seed it. A Sampler is safe for concurrent use.
type Sampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	size int
}

// NewSampler creates a [Sampler] drawing from src that displays at most size songs.
// A nil src is seeded from the clock. Size is clamped to [1, DefaultDisplaySize] and
// a size below one uses [DefaultDisplaySize].
func NewSampler(src rand.Source, size int) *Sampler {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32|now<<32)
	}
	if size < 1 || size > DefaultDisplaySize {
		size = DefaultDisplaySize
	}
	return &Sampler{rng: rand.New(src), size: size}
}

// NewSeededSampler creates a [Sampler] whose picks are reproducible for a given seed.
func NewSeededSampler(seed uint64, size int) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed), size)
}

// Size returns the maximum number of songs displayed.
func (s *Sampler) Size() int { return s.size }

// Sample shuffles a copy of songs and returns its first Size entries.
// The input is never modified.
func (s *Sampler) Sample(songs []models.Song) []models.Song {
	shuffled := slices.Clone(songs)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	return shuffled[:min(len(shuffled), s.size)]
}

// Search filters songs by criteria and samples the matches for display.
func (s *Sampler) Search(songs []models.Song, criteria Criteria) Result {
	filtered := Filter(songs, criteria)
	if len(filtered) == 0 {
		return Result{Criteria: criteria, Filtered: filtered, Display: []models.Song{}, NoMatches: true}
	}
	return Result{Criteria: criteria, Filtered: filtered, Display: s.Sample(filtered)}
}
