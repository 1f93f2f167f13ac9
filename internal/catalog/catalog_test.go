package catalog

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/songhub/internal/models"
)

func song(name, genre, language string) models.Song {
	return models.Song{Name: name, Genre: genre, Language: language, Keyword: "Joy"}
}

func names(songs []models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Name
	}
	return out
}

func TestCatalog(t *testing.T) {
	t.Run("Replace", func(t *testing.T) {
		c := New(song("Old", "Pop", "English"))
		c.Replace([]models.Song{song("A", "Pop", "English"), song("B", "Dance", "Thai")})

		if got := names(c.Songs()); !slices.Equal(got, []string{"A", "B"}) {
			t.Errorf("expected [A B], got %v", got)
		}
	})

	t.Run("Append", func(t *testing.T) {
		c := New()
		c.Append(song("A", "Pop", "English"))
		c.Append(song("A", "Pop", "English"))

		if c.Len() != 2 {
			t.Errorf("expected duplicates to be kept, got %d songs", c.Len())
		}
	})

	t.Run("Songs Returns A Copy", func(t *testing.T) {
		c := New(song("A", "Pop", "English"))
		songs := c.Songs()
		songs[0].Name = "changed"

		if c.Songs()[0].Name != "A" {
			t.Error("expected catalog to be unaffected by caller edits")
		}
	})

	t.Run("RemoveByName Removes Every Match", func(t *testing.T) {
		c := New(
			song("Lonely", "Pop", "English"),
			song("Happy", "Pop", "English"),
			song("Lonely", "Dance", "Spanish"),
		)

		if removed := c.RemoveByName("Lonely"); removed != 2 {
			t.Errorf("expected 2 removed, got %d", removed)
		}
		if got := names(c.Songs()); !slices.Equal(got, []string{"Happy"}) {
			t.Errorf("expected [Happy], got %v", got)
		}
	})

	t.Run("RemoveByName Is Exact", func(t *testing.T) {
		c := New(song("Lonely", "Pop", "English"), song("lonely", "Pop", "English"))

		if removed := c.RemoveByName("Lonely"); removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if removed := c.RemoveByName("Missing"); removed != 0 {
			t.Errorf("expected nothing removed, got %d", removed)
		}
	})

	t.Run("Concurrent Use", func(t *testing.T) {
		c := New()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Append(song(fmt.Sprintf("s%d", i), "Pop", "English"))
				_ = c.Songs()
			}()
		}
		wg.Wait()

		if c.Len() != 50 {
			t.Errorf("expected 50 songs, got %d", c.Len())
		}
	})
}

func TestFilter(t *testing.T) {
	songs := []models.Song{
		song("Hello", "Pop", "English"),
		song("Hola", "Pop", "Spanish"),
		song("Yellow", "Classic Rock", "English"),
		song("Shake It", "Dance", "English"),
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "no criteria", criteria: Criteria{}, want: []string{"Hello", "Hola", "Yellow", "Shake It"}},
		{name: "name substring ignores case", criteria: Criteria{Name: "ELL"}, want: []string{"Hello", "Yellow"}},
		{name: "genre exact", criteria: Criteria{Genre: "Pop"}, want: []string{"Hello", "Hola"}},
		{name: "genre is case sensitive", criteria: Criteria{Genre: "pop"}, want: []string{}},
		{name: "language exact", criteria: Criteria{Language: "English"}, want: []string{"Hello", "Yellow", "Shake It"}},
		{name: "all criteria combine", criteria: Criteria{Name: "h", Genre: "Pop", Language: "English"}, want: []string{"Hello"}},
		{name: "no matches", criteria: Criteria{Name: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(songs, tt.criteria))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("IsZero", func(t *testing.T) {
		if !(Criteria{}).IsZero() {
			t.Error("expected empty criteria to be zero")
		}
		if (Criteria{Language: "Thai"}).IsZero() {
			t.Error("expected criteria with language to be non-zero")
		}
	})
}

func TestSampler(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewSampler(nil, 0)
		if s.Size() != DefaultDisplaySize {
			t.Errorf("expected size %d, got %d", DefaultDisplaySize, s.Size())
		}
	})

	t.Run("Empty Filtered Set", func(t *testing.T) {
		s := NewSeededSampler(1, 3)
		result := s.Search([]models.Song{song("Hello", "Pop", "English")}, Criteria{Genre: "Dance"})

		if !result.NoMatches {
			t.Error("expected NoMatches")
		}
		if len(result.Display) != 0 || result.Display == nil {
			t.Errorf("expected empty display set, got %#v", result.Display)
		}
	})

	t.Run("Small Set Is Shown In Full", func(t *testing.T) {
		songs := []models.Song{
			song("A", "Pop", "English"),
			song("B", "Pop", "Spanish"),
			song("C", "Dance", "English"),
		}
		s := NewSeededSampler(42, 3)

		result := s.Search(songs, Criteria{Genre: "Pop"})

		if result.NoMatches {
			t.Fatal("expected matches")
		}
		got := names(result.Display)
		slices.Sort(got)
		if !slices.Equal(got, []string{"A", "B"}) {
			t.Errorf("expected display {A, B}, got %v", got)
		}
	})

	t.Run("Large Set Shows Three Distinct Members", func(t *testing.T) {
		var songs []models.Song
		for i := range 10 {
			songs = append(songs, song(fmt.Sprintf("s%d", i), "Pop", "English"))
		}
		s := NewSeededSampler(7, 3)

		for range 20 {
			display := s.Sample(songs)
			if len(display) != 3 {
				t.Fatalf("expected 3 songs, got %d", len(display))
			}
			got := names(display)
			seen := map[string]bool{}
			for _, n := range got {
				if seen[n] {
					t.Fatalf("duplicate %s in %v", n, got)
				}
				seen[n] = true
				if !slices.Contains(names(songs), n) {
					t.Fatalf("%s is not in the filtered set", n)
				}
			}
		}
	})

	t.Run("Every Member Is Eventually Selected", func(t *testing.T) {
		var songs []models.Song
		for i := range 6 {
			songs = append(songs, song(fmt.Sprintf("s%d", i), "Pop", "English"))
		}
		s := NewSeededSampler(3, 3)

		seen := map[string]int{}
		for range 500 {
			for _, d := range s.Sample(songs) {
				seen[d.Name]++
			}
		}

		for _, n := range names(songs) {
			if seen[n] == 0 {
				t.Errorf("%s was never selected", n)
			}
		}
	})

	t.Run("Same Seed Same Picks", func(t *testing.T) {
		var songs []models.Song
		for i := range 8 {
			songs = append(songs, song(fmt.Sprintf("s%d", i), "Pop", "English"))
		}

		a := names(NewSeededSampler(99, 3).Sample(songs))
		b := names(NewSeededSampler(99, 3).Sample(songs))
		if !slices.Equal(a, b) {
			t.Errorf("expected identical picks, got %v and %v", a, b)
		}
	})

	t.Run("Input Is Not Modified", func(t *testing.T) {
		songs := []models.Song{song("A", "Pop", "English"), song("B", "Pop", "English"), song("C", "Pop", "English"), song("D", "Pop", "English")}
		before := names(songs)

		NewSeededSampler(5, 3).Sample(songs)

		if !slices.Equal(names(songs), before) {
			t.Errorf("expected input order %v, got %v", before, names(songs))
		}
	})

	t.Run("Smaller Size", func(t *testing.T) {
		songs := []models.Song{song("A", "Pop", "English"), song("B", "Pop", "English"), song("C", "Pop", "English")}
		if got := NewSeededSampler(1, 1).Sample(songs); len(got) != 1 {
			t.Errorf("expected one song, got %d", len(got))
		}
	})

	t.Run("Size Above Three Is Capped", func(t *testing.T) {
		var songs []models.Song
		for i := range 10 {
			songs = append(songs, song(fmt.Sprintf("Song %d", i), "Pop", "English"))
		}
		s := NewSeededSampler(1, 5)

		if s.Size() != DefaultDisplaySize {
			t.Errorf("expected size %d, got %d", DefaultDisplaySize, s.Size())
		}
		if got := s.Search(songs, Criteria{Genre: "Pop"}); len(got.Display) != 3 {
			t.Errorf("expected 3 songs displayed, got %d", len(got.Display))
		}
	})
}

// The catalog holds four songs and the user searches by genre Pop.
func TestSearchScenario(t *testing.T) {
	songs := []models.Song{
		{Name: "Hello", Genre: "Pop", Language: "English", Keyword: "Joy"},
		{Name: "Hola", Genre: "Pop", Language: "Spanish", Keyword: "Beauty"},
		{Name: "Yellow", Genre: "Classic Rock", Language: "English", Keyword: "Sadness"},
		{Name: "Shake It", Genre: "Dance", Language: "English", Keyword: "Feeling Pumped Up"},
	}

	result := NewSampler(nil, 3).Search(songs, Criteria{Genre: "Pop"})

	if got := names(result.Filtered); !slices.Equal(got, []string{"Hello", "Hola"}) {
		t.Errorf("expected filtered [Hello Hola], got %v", got)
	}
	got := names(result.Display)
	slices.Sort(got)
	if !slices.Equal(got, []string{"Hello", "Hola"}) {
		t.Errorf("expected both Pop songs displayed, got %v", got)
	}
}

func TestSearchGenreScenario(t *testing.T) {
	songs := []models.Song{
		{Name: "Lonely", Genre: "Pop", Language: "English", Keyword: "Sadness"},
		{Name: "Joyful", Genre: "Pop", Language: "English", Keyword: "Joy"},
		{Name: "Samba", Genre: "Dance", Language: "Portuguese", Keyword: "Joy"},
	}

	result := NewSeededSampler(42, DefaultDisplaySize).Search(songs, Criteria{Genre: "Pop"})

	if !slices.Equal(result.Filtered, songs[:2]) {
		t.Errorf("expected the first two records, got %v", names(result.Filtered))
	}
	got := names(result.Display)
	slices.Sort(got)
	if !slices.Equal(got, []string{"Joyful", "Lonely"}) {
		t.Errorf("expected both Pop songs displayed, got %v", got)
	}
	if result.NoMatches {
		t.Error("expected matches")
	}
}
