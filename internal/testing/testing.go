// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/songhub/internal/models"
)

// StubAPI is a test double for services.CatalogAPI.
//
// Each call runs the matching func field when set and records the call.
// Unset song funcs return an empty catalog and echo inputs back.
type StubAPI struct {
	LoginFunc    func(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
	RegisterFunc func(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	ListFunc     func(ctx context.Context, cred models.Credential) ([]models.Song, error)
	CreateFunc   func(ctx context.Context, cred models.Credential, song models.Song) (*models.Song, error)
	RemoveFunc   func(ctx context.Context, cred models.Credential, name string) (string, error)

	mu    sync.Mutex
	calls map[string]int
}

func (s *StubAPI) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

// Calls returns how many times the named method ("Login", "ListSongs", ...) was called.
func (s *StubAPI) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// TotalCalls returns the number of calls across all methods.
func (s *StubAPI) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *StubAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	s.record("Login")
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, req)
	}
	return &models.LoginResult{AccessToken: "test-token", TokenType: "bearer", UserID: "1", Email: req.Email}, nil
}

func (s *StubAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	s.record("Register")
	if s.RegisterFunc != nil {
		return s.RegisterFunc(ctx, req)
	}
	return &models.User{ID: "1", Username: req.Username, Email: req.Email}, nil
}

func (s *StubAPI) ListSongs(ctx context.Context, cred models.Credential) ([]models.Song, error) {
	s.record("ListSongs")
	if s.ListFunc != nil {
		return s.ListFunc(ctx, cred)
	}
	return []models.Song{}, nil
}

func (s *StubAPI) CreateSong(ctx context.Context, cred models.Credential, song models.Song) (*models.Song, error) {
	s.record("CreateSong")
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, cred, song)
	}
	song.UserID = models.UserID(cred.UserID)
	return &song, nil
}

func (s *StubAPI) RemoveSong(ctx context.Context, cred models.Credential, name string) (string, error) {
	s.record("RemoveSong")
	if s.RemoveFunc != nil {
		return s.RemoveFunc(ctx, cred, name)
	}
	return "Song '" + name + "' removed successfully", nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
