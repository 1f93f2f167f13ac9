package pages

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/formatter"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/services"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
)

// Kind identifies a screen.
type Kind string

const (
	KindMain   Kind = "main"
	KindSongs  Kind = "songs"
	KindAdd    Kind = "add"
	KindRemove Kind = "remove"
	KindFind   Kind = "find"
)

// Kinds lists every screen in menu order.
var Kinds = []Kind{KindMain, KindSongs, KindAdd, KindRemove, KindFind}

// FetchesOnEntry reports whether entering the screen loads the catalog.
// The menu has no catalog and the add screen starts empty.
func (k Kind) FetchesOnEntry() bool {
	switch k {
	case KindSongs, KindRemove, KindFind:
		return true
	default:
		return false
	}
}

// Title returns the heading shown for the screen.
func (k Kind) Title() string {
	switch k {
	case KindMain:
		return "SongHub"
	case KindSongs:
		return "My Songs"
	case KindAdd:
		return "Add Song"
	case KindRemove:
		return "Remove Song"
	case KindFind:
		return "Find Song"
	default:
		return string(k)
	}
}

// ParseKind resolves a screen name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown page %q", shared.ErrInvalidArgument, name)
}

// Deps are the collaborators every page shares.
type Deps struct {
	Guard   *session.Guard
	API     services.CatalogAPI
	Sampler *catalog.Sampler
	Logger  *log.Logger
}

// Page is one screen with its own copy of the catalog.
//
// Every catalog operation runs the session guard first. A failed guard returns a
// [*session.RedirectError] and the backend is never called.
type Page struct {
	kind    Kind
	deps    Deps
	catalog *catalog.Catalog

	mu          sync.Mutex
	message     string
	fetchFailed bool
}

// New creates a [Page] of the given kind.
func New(kind Kind, deps Deps) *Page {
	if deps.Sampler == nil {
		deps.Sampler = catalog.NewSampler(nil, catalog.DefaultDisplaySize)
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return &Page{kind: kind, deps: deps, catalog: catalog.New()}
}

// Kind returns the screen this page shows.
func (p *Page) Kind() Kind { return p.kind }

// Songs returns the page's catalog.
func (p *Page) Songs() []models.Song { return p.catalog.Songs() }

// Message returns the message left by the last operation, empty after a success.
func (p *Page) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

func (p *Page) setMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = msg
}

// FetchFailed reports whether the last fetch of the catalog failed.
func (p *Page) FetchFailed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchFailed
}

func (p *Page) setFetchFailed(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchFailed = failed
}

// fail records err's message and returns err.
func (p *Page) fail(err error) error {
	p.setMessage(Message(err))
	return err
}

// Enter runs the guard and, for screens that show the catalog, fetches it once.
func (p *Page) Enter(ctx context.Context) error {
	cred, err := p.deps.Guard.Enter(ctx)
	if err != nil {
		p.deps.Logger.Debug("page guard failed", "page", p.kind, "err", err)
		return err
	}
	if !p.kind.FetchesOnEntry() {
		p.setMessage("")
		return nil
	}
	return p.fetch(ctx, cred)
}

// Refresh refetches the catalog, replacing it only on success.
func (p *Page) Refresh(ctx context.Context) error {
	cred, err := p.deps.Guard.Enter(ctx)
	if err != nil {
		return err
	}
	return p.fetch(ctx, cred)
}

func (p *Page) fetch(ctx context.Context, cred models.Credential) error {
	songs, err := p.deps.API.ListSongs(ctx, cred)
	if err != nil {
		p.deps.Logger.Warn("fetch songs failed", "page", p.kind, "err", err)
		p.setFetchFailed(true)
		return p.fail(&Failure{
			Message: services.Message(err, MsgFetchFailed),
			Err:     fmt.Errorf("%w: %w", shared.ErrFetchFailed, err),
		})
	}

	p.catalog.Replace(songs)
	p.setFetchFailed(false)
	p.setMessage("")
	p.deps.Logger.Debug("fetched songs", "page", p.kind, "count", len(songs))
	return nil
}

// Create validates song, sends it to the backend and appends the stored record.
func (p *Page) Create(ctx context.Context, song models.Song) (*models.Song, error) {
	cred, err := p.deps.Guard.Enter(ctx)
	if err != nil {
		return nil, err
	}
	if err := song.Validate(); err != nil {
		return nil, p.fail(err)
	}

	created, err := p.deps.API.CreateSong(ctx, cred, song)
	if err != nil {
		p.deps.Logger.Warn("create song failed", "name", song.Name, "err", err)
		return nil, p.fail(&Failure{Message: services.Message(err, MsgAddFailed), Err: err})
	}

	p.catalog.Append(*created)
	p.setMessage("")
	return created, nil
}

// Delete removes every song named name on the backend and then from the page's catalog.
// It returns the backend's confirmation.
func (p *Page) Delete(ctx context.Context, name string) (string, error) {
	cred, err := p.deps.Guard.Enter(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", p.fail(models.NewValidationError(MsgNameRequired))
	}

	detail, err := p.deps.API.RemoveSong(ctx, cred, name)
	if err != nil {
		p.deps.Logger.Warn("remove song failed", "name", name, "err", err)
		return "", p.fail(&Failure{Message: services.Message(err, MsgRemoveFailed), Err: err})
	}

	removed := p.catalog.RemoveByName(name)
	p.deps.Logger.Debug("removed songs", "name", name, "local", removed)
	p.setMessage("")
	return detail, nil
}

// Search filters the page's catalog and samples the matches for display.
// It works on the songs already held and makes no request.
// After a failed fetch the fetch failure stays as the page message.
func (p *Page) Search(criteria catalog.Criteria) catalog.Result {
	result := p.deps.Sampler.Search(p.catalog.Songs(), criteria)
	switch {
	case p.FetchFailed():
	case result.NoMatches:
		p.setMessage(MsgNoSongs)
	default:
		p.setMessage("")
	}
	return result
}

// Export writes the page's catalog to w in format.
func (p *Page) Export(w io.Writer, format formatter.Format) error {
	data, err := formatter.Export(p.catalog.Songs(), format, p.kind.Title())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
