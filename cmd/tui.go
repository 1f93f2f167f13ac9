package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/services"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
	"github.com/desertthunder/songhub/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
//
// The TUI keeps its session in memory, seeded from the credential database, so logging out inside it
// leaves the CLI session untouched.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	start, err := pages.ParseKind(cmd.String("page"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.TUIFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	memory := session.NewMemoryStore()
	if err := r.seedSession(ctx, session.New(memory)); err != nil {
		fileLogger.Warn("starting without a stored session", "err", err)
	}

	api := r.api
	if _, ok := api.(*services.Client); ok {
		api = services.NewClientFromConfig(r.config.API, fileLogger)
	}

	guard := session.NewGuard(session.New(memory), r.config.Session.LoginPath)
	deps := pages.Deps{
		Guard:   guard,
		API:     api,
		Sampler: catalog.NewSampler(nil, r.config.Search.DisplaySize),
		Logger:  fileLogger,
	}
	auth := pages.NewAuthenticator(guard, api, r.config.Session.HomePath, fileLogger)

	model := ui.NewModel(ctx, deps, auth).StartAt(start)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// seedSession copies the stored credential into dst.
func (r *Runner) seedSession(ctx context.Context, dst *session.Session) error {
	store, err := r.sessionStore(ctx)
	if err != nil {
		return err
	}

	cred, err := session.New(store).Credential(ctx)
	if err != nil {
		return err
	}
	if !cred.Present() {
		return nil
	}
	return dst.Begin(ctx, cred)
}
