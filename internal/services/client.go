package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// Client implements [CatalogAPI] over HTTP.
//
// Authenticated calls go through an [oauth2] transport that attaches the credential's bearer token.
// Every call first waits on the client's [rate.Limiter]; no call is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithLimiter throttles outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new [Client] for the backend at baseURL.
//
// A nil client uses [http.DefaultClient]; the default limiter never blocks.
func NewClient(baseURL string, client *http.Client, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a [Client] from the [api] config section.
//
// A zero timeout means no timeout and a zero rate limit means unlimited.
func NewClientFromConfig(cfg shared.APIConfig, logger *log.Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := max(cfg.Burst, 1)

	return NewClient(
		cfg.BaseURL,
		&http.Client{Timeout: cfg.Timeout.Duration},
		WithLimiter(rate.NewLimiter(limit, burst)),
		WithLogger(logger),
	)
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Login performs POST /api/users/login.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/api/users/login", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register performs POST /api/users/create.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/api/users/create", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListSongs performs GET /api/songs?user_id=.
func (c *Client) ListSongs(ctx context.Context, cred models.Credential) ([]models.Song, error) {
	query := url.Values{"user_id": {cred.UserID}}

	var songs []models.Song
	if err := c.do(ctx, c.authorized(ctx, cred), http.MethodGet, "/api/songs", query, nil, &songs); err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

// CreateSong performs POST /api/songs/create.
func (c *Client) CreateSong(ctx context.Context, cred models.Credential, song models.Song) (*models.Song, error) {
	body := models.Song{Name: song.Name, Genre: song.Genre, Language: song.Language, Keyword: song.Keyword}

	var created models.Song
	if err := c.do(ctx, c.authorized(ctx, cred), http.MethodPost, "/api/songs/create", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveSong performs DELETE /api/songs/remove?songname=.
func (c *Client) RemoveSong(ctx context.Context, cred models.Credential, name string) (string, error) {
	query := url.Values{"songname": {name}}

	var result struct {
		Detail string `json:"detail"`
	}
	if err := c.do(ctx, c.authorized(ctx, cred), http.MethodDelete, "/api/songs/remove", query, nil, &result); err != nil {
		return "", err
	}
	return result.Detail, nil
}

// authorized returns an HTTP client that sends cred's token as a bearer token.
func (c *Client) authorized(ctx context.Context, cred models.Credential) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cred.Token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = c.httpClient.Timeout
	return hc
}

// do sends a JSON request and decodes a JSON response into result.
// Non-2xx responses become an [APIError].
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, query url.Values, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(data)}
		c.logger.Debug("api error", "method", method, "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if result != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
		}
	}

	return nil
}
