package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/songhub/internal/models"
)

type fakeUser struct {
	id       int
	username string
	email    string
	password string
}

// FakeBackend is an in-memory stand-in for the catalog backend's HTTP API.
//
// Tokens have the form "token-<user id>". Listing songs answers 404 when the user has none.
type FakeBackend struct {
	// ListStatus, when set, is returned by GET /api/songs instead of the catalog.
	ListStatus int

	mu     sync.Mutex
	mux    *http.ServeMux
	users  []fakeUser
	songs  []models.Song
	nextID int
	calls  map[string]int
}

// NewFakeBackend creates an empty [FakeBackend].
func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{mux: http.NewServeMux(), nextID: 1, calls: make(map[string]int)}
	b.mux.HandleFunc("POST /api/users/login", b.login)
	b.mux.HandleFunc("POST /api/users/create", b.register)
	b.mux.HandleFunc("GET /api/songs", b.listSongs)
	b.mux.HandleFunc("POST /api/songs/create", b.createSong)
	b.mux.HandleFunc("DELETE /api/songs/remove", b.removeSong)
	return b
}

func (b *FakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.Method+" "+r.URL.Path]++
	b.mu.Unlock()
	b.mux.ServeHTTP(w, r)
}

// Calls returns how many requests were made for a "METHOD /path" pair.
func (b *FakeBackend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// AddUser registers an account and returns its id.
func (b *FakeBackend) AddUser(email, username, password string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUser(email, username, password)
}

func (b *FakeBackend) addUser(email, username, password string) int {
	id := len(b.users) + 1
	b.users = append(b.users, fakeUser{id: id, username: username, email: email, password: password})
	return id
}

// Token returns the bearer token the backend accepts for userID.
func (b *FakeBackend) Token(userID int) string {
	return "token-" + strconv.Itoa(userID)
}

// Credential returns a credential accepted for userID.
func (b *FakeBackend) Credential(userID int) models.Credential {
	return models.Credential{Token: b.Token(userID), UserID: strconv.Itoa(userID)}
}

// AddSong stores song for userID and returns it with server fields filled in.
func (b *FakeBackend) AddSong(userID int, song models.Song) models.Song {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addSong(userID, song)
}

func (b *FakeBackend) addSong(userID int, song models.Song) models.Song {
	song.ID = b.nextID
	song.UserID = models.UserID(strconv.Itoa(userID))
	song.AddedAt = time.Date(2024, 1, 1, 0, 0, b.nextID, 0, time.UTC).Format("2006-01-02T15:04:05")
	b.nextID++
	b.songs = append(b.songs, song)
	return song
}

// Songs returns the stored songs for userID.
func (b *FakeBackend) Songs(userID int) []models.Song {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.songsFor(strconv.Itoa(userID))
}

func (b *FakeBackend) songsFor(userID string) []models.Song {
	songs := []models.Song{}
	for _, s := range b.songs {
		if string(s.UserID) == userID {
			songs = append(songs, s)
		}
	}
	return songs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeValidation(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body", field}, "msg": "field required", "type": "value_error.missing"}},
	})
}

// authorize returns the user id named by the bearer token, or writes a 401.
func (b *FakeBackend) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	id, ok := strings.CutPrefix(token, "token-")
	if !ok || id == "" {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return "", false
	}
	return id, true
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "email")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.email == req.Email && u.password == req.Password {
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token": b.Token(u.id),
				"token_type":   "bearer",
				"user_id":      u.id,
				"username":     u.username,
				"email":        u.email,
				"created_at":   "2024-01-01T00:00:00",
			})
			return
		}
	}
	writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
}

func (b *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "username")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.username == req.Username {
			writeDetail(w, http.StatusBadRequest, "Username already exists")
			return
		}
		if u.email == req.Email {
			writeDetail(w, http.StatusBadRequest, "Email already exists")
			return
		}
	}

	id := b.addUser(req.Email, req.Username, req.Password)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":    id,
		"username":   req.Username,
		"email":      req.Email,
		"created_at": "2024-01-01T00:00:00",
	})
}

func (b *FakeBackend) listSongs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if _, err := strconv.Atoi(userID); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"query", "user_id"}, "msg": "value is not a valid integer"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ListStatus != 0 {
		writeDetail(w, b.ListStatus, fmt.Sprintf("Forced status %d", b.ListStatus))
		return
	}

	songs := b.songsFor(userID)
	if len(songs) == 0 {
		writeDetail(w, http.StatusNotFound, "No songs found for this user")
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (b *FakeBackend) createSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := b.authorize(w, r)
	if !ok {
		return
	}

	var song models.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		writeValidation(w, "songname")
		return
	}
	if song.Name == "" {
		writeValidation(w, "songname")
		return
	}

	id, _ := strconv.Atoi(userID)
	b.mu.Lock()
	created := b.addSong(id, song)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, created)
}

func (b *FakeBackend) removeSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := b.authorize(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("songname")

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.songs[:0]
	removed := 0
	for _, s := range b.songs {
		if string(s.UserID) == userID && s.Name == name {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	b.songs = kept

	if removed == 0 {
		writeDetail(w, http.StatusNotFound, "Song not found")
		return
	}
	writeDetail(w, http.StatusOK, fmt.Sprintf("Song '%s' removed successfully", name))
}
