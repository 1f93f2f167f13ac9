package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/server"
	"github.com/desertthunder/songhub/internal/services"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templateFiles embed.FS

var views = []string{"login", "register", "menu", "songs", "add", "remove", "find"}

// Options configures an [App].
type Options struct {
	Session shared.SessionConfig
	API     services.CatalogAPI
	Sampler *catalog.Sampler
	Logger  *log.Logger
}

// App is the web front end. It implements [http.Handler].
type App struct {
	api       services.CatalogAPI
	cookies   *sessions.CookieStore
	config    shared.SessionConfig
	sampler   *catalog.Sampler
	logger    *log.Logger
	templates map[string]*template.Template
	router    *server.BasicRouter
}

type ctxKey int

const guardKey ctxKey = iota

// New builds an [App] and registers its routes.
func New(opts Options) (*App, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("%w: web app needs a catalog API", shared.ErrMissingArgument)
	}
	if opts.Session.Secret == "" {
		return nil, fmt.Errorf("%w: session secret is empty", shared.ErrMissingConfig)
	}
	if opts.Session.Secret == shared.PlaceholderSecret {
		return nil, fmt.Errorf("%w: session secret is still the example placeholder", shared.ErrInvalidConfig)
	}
	if opts.Session.LoginPath == "" {
		opts.Session.LoginPath = session.DefaultLoginPath
	}
	if opts.Session.HomePath == "" {
		opts.Session.HomePath = "/"
	}
	if opts.Session.CookieName == "" {
		opts.Session.CookieName = "songhub_session"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sampler == nil {
		opts.Sampler = catalog.NewSampler(nil, catalog.DefaultDisplaySize)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	cookies := sessions.NewCookieStore([]byte(opts.Session.Secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	app := &App{
		api:       opts.API,
		cookies:   cookies,
		config:    opts.Session,
		sampler:   opts.Sampler,
		logger:    opts.Logger,
		templates: templates,
		router:    server.NewBasicRouter(),
	}
	app.routes()
	return app, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(views))
	for _, name := range views {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

func (a *App) routes() {
	a.router.Use(server.RequestID(), server.Logging(a.logger), server.Recover(a.logger))

	a.router.HandleFunc(http.MethodGet, "/login", a.loginForm)
	a.router.HandleFunc(http.MethodPost, "/login", a.login)
	a.router.HandleFunc(http.MethodGet, "/register", a.registerForm)
	a.router.HandleFunc(http.MethodPost, "/register", a.register)
	a.router.HandleFunc(http.MethodPost, "/logout", a.logout)

	guarded := func(h http.HandlerFunc) http.Handler { return a.RequireSession(h) }
	a.router.Handle(http.MethodGet, "/{$}", guarded(a.menu))
	a.router.Handle(http.MethodGet, "/songs", guarded(a.songs))
	a.router.Handle(http.MethodGet, "/songs/add", guarded(a.addForm))
	a.router.Handle(http.MethodPost, "/songs/add", guarded(a.add))
	a.router.Handle(http.MethodGet, "/songs/remove", guarded(a.removeForm))
	a.router.Handle(http.MethodPost, "/songs/remove", guarded(a.remove))
	a.router.Handle(http.MethodGet, "/songs/find", guarded(a.findForm))
	a.router.Handle(http.MethodPost, "/songs/find", guarded(a.find))
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// requestSession loads the cookie session for r. An unreadable cookie yields an empty session.
func (a *App) requestSession(r *http.Request) *cookieStore {
	sess, err := a.cookies.Get(r, a.config.CookieName)
	if err != nil {
		a.logger.Debug("discarding unreadable session cookie", "err", err)
	}
	return &cookieStore{sess: sess, maxAge: a.config.MaxAge}
}

type requestState struct {
	store *cookieStore
	guard *session.Guard
}

func (a *App) newState(r *http.Request) *requestState {
	store := a.requestSession(r)
	return &requestState{store: store, guard: session.NewGuard(session.New(store), a.config.LoginPath)}
}

// state returns the request's session, reusing the one loaded by [App.RequireSession].
func (a *App) state(r *http.Request) *requestState {
	if st, ok := r.Context().Value(guardKey).(*requestState); ok {
		return st
	}
	return a.newState(r)
}

// RequireSession runs the session guard before next. Requests without a credential are sent
// to the login page with 303 See Other and next is never called.
func (a *App) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := a.newState(r)
		if _, err := st.guard.Enter(r.Context()); err != nil {
			a.redirect(w, r, st, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), guardKey, st)))
	})
}

// redirect sends the browser to the target of a [session.RedirectError], or to the login page.
func (a *App) redirect(w http.ResponseWriter, r *http.Request, st *requestState, err error) {
	target := a.config.LoginPath
	if redirect, ok := session.AsRedirect(err); ok {
		target = redirect.Target
	}
	a.save(w, r, st)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *App) save(w http.ResponseWriter, r *http.Request, st *requestState) {
	if err := st.store.flush(w, r); err != nil {
		a.logger.Error("failed to save session", "err", err)
	}
}

func (a *App) page(kind pages.Kind, st *requestState) *pages.Page {
	return pages.New(kind, pages.Deps{Guard: st.guard, API: a.api, Sampler: a.sampler, Logger: a.logger})
}

func (a *App) authenticator(st *requestState) *pages.Authenticator {
	return pages.NewAuthenticator(st.guard, a.api, a.config.HomePath, a.logger)
}

// viewData is passed to every template.
type viewData struct {
	Title     string
	LoggedIn  bool
	Message   string
	Notices   []string
	Songs     []models.Song
	Result    *catalog.Result
	Form      map[string]string
	Genres    []string
	Languages []string
	Keywords  []string
}

func (a *App) render(w http.ResponseWriter, r *http.Request, st *requestState, status int, name string, data viewData) {
	t, ok := a.templates[name]
	if !ok {
		http.Error(w, "unknown view", http.StatusInternalServerError)
		return
	}

	data.Genres, data.Languages, data.Keywords = models.Genres, models.Languages, models.Keywords
	if data.Form == nil {
		data.Form = map[string]string{}
	}
	data.Notices = append(data.Notices, st.store.flashes()...)

	a.save(w, r, st)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		a.logger.Error("failed to render template", "view", name, "err", err)
	}
}

// status maps an operation error to the response code of the re-rendered page.
func status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, shared.ErrValidation):
		return http.StatusUnprocessableEntity
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
