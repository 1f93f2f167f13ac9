package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/repositories"
	"github.com/desertthunder/songhub/internal/services"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	api     services.CatalogAPI
	store   session.Store
	sampler *catalog.Sampler
	logger  *log.Logger
	output  io.Writer
	now     func() time.Time
	db      *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Store is opened lazily from the configured SQLite database on first use.
type RunnerOpts struct {
	Config  *shared.Config
	API     services.CatalogAPI
	Store   session.Store
	Sampler *catalog.Sampler
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.API == nil {
		opts.API = services.NewClientFromConfig(opts.Config.API, opts.Logger)
	}
	if opts.Sampler == nil {
		opts.Sampler = catalog.NewSampler(nil, opts.Config.Search.DisplaySize)
	}

	return &Runner{
		config:  opts.Config,
		api:     opts.API,
		store:   opts.Store,
		sampler: opts.Sampler,
		logger:  opts.Logger,
		output:  opts.Output,
		now:     time.Now,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songsCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the credential database when one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// sessionStore returns the credential store, opening the SQLite store on first use.
func (r *Runner) sessionStore(ctx context.Context) (session.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	db, err := shared.OpenStore(ctx, r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrSessionStore, err)
	}
	r.logger.Debug("opened credential store", "path", r.config.Database.Path)

	r.db = db
	r.store = repositories.NewSessionRepository(db)
	return r.store, nil
}

func (r *Runner) guard(ctx context.Context) (*session.Guard, error) {
	store, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	return session.NewGuard(session.New(store), r.config.Session.LoginPath), nil
}

// deps builds the collaborators of a catalog page.
// A credential store that cannot be opened fails closed with a redirect to login.
func (r *Runner) deps(ctx context.Context, sampler *catalog.Sampler) (pages.Deps, error) {
	guard, err := r.guard(ctx)
	if err != nil {
		return pages.Deps{}, &session.RedirectError{Target: r.config.Session.LoginPath, Cause: err}
	}
	if sampler == nil {
		sampler = r.sampler
	}
	return pages.Deps{Guard: guard, API: r.api, Sampler: sampler, Logger: r.logger}, nil
}

// enter builds the page of the given kind and enters it.
func (r *Runner) enter(ctx context.Context, kind pages.Kind, sampler *catalog.Sampler) (*pages.Page, error) {
	deps, err := r.deps(ctx, sampler)
	if err != nil {
		return nil, err
	}
	page := pages.New(kind, deps)
	if err := page.Enter(ctx); err != nil {
		return page, err
	}
	return page, nil
}

func (r *Runner) authenticator(ctx context.Context) (*pages.Authenticator, error) {
	guard, err := r.guard(ctx)
	if err != nil {
		return nil, err
	}
	return pages.NewAuthenticator(guard, r.api, r.config.Session.HomePath, r.logger), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
