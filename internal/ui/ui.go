package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	RegisterView
	MenuView
	SongsView
	AddView
	RemoveView
	FindView
)

func (v ViewState) String() string {
	switch v {
	case LoginView:
		return "login"
	case RegisterView:
		return "register"
	case MenuView:
		return "menu"
	case SongsView:
		return "songs"
	case AddView:
		return "add"
	case RemoveView:
		return "remove"
	case FindView:
		return "find"
	default:
		return "unknown"
	}
}

func viewFor(kind pages.Kind) ViewState {
	switch kind {
	case pages.KindSongs:
		return SongsView
	case pages.KindAdd:
		return AddView
	case pages.KindRemove:
		return RemoveView
	case pages.KindFind:
		return FindView
	default:
		return MenuView
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	deps    pages.Deps
	auth    *pages.Authenticator
	start   pages.Kind
	page    *pages.Page
	form    *form
	result  *catalog.Result
	menu    list.Model
	songs   list.Model
	message string
	notice  string
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps pages.Deps, auth *pages.Authenticator) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = pages.KindMain.Title()
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	if deps.Sampler == nil {
		deps.Sampler = catalog.NewSampler(nil, catalog.DefaultDisplaySize)
	}

	songs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songs.SetShowHelp(false)

	return &Model{
		ctx:   ctx,
		view:  LoginView,
		start: pages.KindMain,
		deps:  deps,
		auth:  auth,
		form:  loginForm(),
		menu:  menu,
		songs: songs,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// State returns the view currently shown.
func (m *Model) State() ViewState { return m.view }

// StartAt makes the program open on the screen of the given kind instead of the menu.
func (m *Model) StartAt(kind pages.Kind) *Model {
	m.start = kind
	return m
}

// Init enters the start screen, which falls back to the login view without a session.
func (m *Model) Init() tea.Cmd {
	return m.enter(m.start)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		m.songs.SetSize(msg.Width-4, msg.Height-14)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case RegisterView:
			return m.handleRegisterKeys(msg)
		case MenuView:
			return m.handleMenuKeys(msg)
		case SongsView:
			return m.handleSongsKeys(msg)
		case AddView, RemoveView, FindView:
			return m.handleFormKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPageEntered:
		r := msg.data.(pageResult)
		if _, ok := session.AsRedirect(r.err); ok {
			return m.toLogin("")
		}
		m.show(r.page)
		m.message = pages.Message(r.err)
		return m, nil

	case MsgLoggedIn:
		if err := errorOf(msg.data); err != nil {
			m.message = pages.Message(err)
			return m, nil
		}
		m.message = ""
		m.notice = pages.MsgLoginOK
		return m, m.enter(pages.KindMain)

	case MsgRegistered:
		r := msg.data.(registerResult)
		if r.err != nil {
			m.message = pages.Message(r.err)
			return m, nil
		}
		model, cmd := m.toLogin(pages.MsgRegistered)
		if r.user != nil {
			m.form.set(0, r.user.Email)
			m.form.setFocus(1)
		}
		return model, cmd

	case MsgLoggedOut:
		return m.toLogin("Logged out.")

	case MsgSongCreated:
		r := msg.data.(createResult)
		if m.redirected(r.err) {
			return m.toLogin("")
		}
		if r.err != nil {
			m.message = pages.Message(r.err)
			return m, nil
		}
		m.form.reset()
		m.message = ""
		m.notice = fmt.Sprintf("Added %q.", r.song.Name)
		return m, m.songs.SetItems(songItems(m.page.Songs()))

	case MsgSongRemoved:
		r := msg.data.(removeResult)
		if m.redirected(r.err) {
			return m.toLogin("")
		}
		if r.err != nil {
			m.message = pages.Message(r.err)
			return m, nil
		}
		m.form.reset()
		m.message = ""
		m.notice = r.detail
		return m, m.songs.SetItems(songItems(m.page.Songs()))

	case MsgRefreshed:
		err := errorOf(msg.data)
		if m.redirected(err) {
			return m.toLogin("")
		}
		m.message = pages.Message(err)
		return m, m.songs.SetItems(songItems(m.page.Songs()))
	}
	return m, nil
}

func (m *Model) redirected(err error) bool {
	_, ok := session.AsRedirect(err)
	return ok
}

// show switches to the view for page.
func (m *Model) show(page *pages.Page) {
	m.page = page
	m.view = viewFor(page.Kind())
	m.result = nil
	m.message = ""
	if m.view != MenuView {
		m.notice = ""
	}

	switch m.view {
	case AddView:
		m.form = songForm()
	case RemoveView:
		m.form = removeForm()
	case FindView:
		m.form = findForm()
	default:
		m.form = nil
	}

	m.songs.Title = page.Kind().Title()
	if m.view == FindView {
		m.songs.SetItems(nil)
	} else {
		m.songs.SetItems(songItems(page.Songs()))
	}
}

func (m *Model) toLogin(notice string) (tea.Model, tea.Cmd) {
	m.view = LoginView
	m.page = nil
	m.result = nil
	m.form = loginForm()
	m.message = ""
	m.notice = notice
	m.songs.SetItems(nil)
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQ):
		return m, tea.Quit
	case key.Matches(msg, m.keys.register):
		m.view = RegisterView
		m.form = registerForm()
		m.message = ""
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.submit):
		req := models.LoginRequest{Email: m.form.value(0), Password: m.form.value(1)}
		return m, m.login(req)
	case key.Matches(msg, m.keys.next):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.form.prev()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQ):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m.toLogin("")
	case key.Matches(msg, m.keys.submit):
		req := models.RegisterRequest{
			Email:    m.form.value(0),
			Username: m.form.value(1),
			Password: m.form.value(2),
		}
		return m, m.register(req)
	case key.Matches(msg, m.keys.next):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.form.prev()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		item, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.notice = ""
		if item.kind == "" {
			return m, m.logout()
		}
		return m, m.enter(item.kind)
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleSongsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.enter(pages.KindMain)
	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQ):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.enter(pages.KindMain)
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	case key.Matches(msg, m.keys.next):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.form.prev()
		return m, nil
	}
	return m, m.form.update(msg)
}

// submit runs the operation behind the current catalog form.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.view {
	case AddView:
		song := models.Song{
			Name:     m.form.value(0),
			Genre:    m.form.value(1),
			Language: m.form.value(2),
			Keyword:  m.form.value(3),
		}
		return m, m.create(song)
	case RemoveView:
		return m, m.remove(m.form.value(0))
	case FindView:
		criteria := catalog.Criteria{
			Name:     m.form.value(0),
			Genre:    m.form.value(1),
			Language: m.form.value(2),
		}
		result := m.page.Search(criteria)
		m.result = &result
		m.message = m.page.Message()
		return m, m.songs.SetItems(songItems(result.Display))
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case SongsView:
		m.songs, cmd = m.songs.Update(msg)
	default:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	}
	return m, cmd
}

func (m *Model) enter(kind pages.Kind) tea.Cmd {
	page := pages.New(kind, m.deps)
	return func() tea.Msg {
		return pageEnteredMsg(page, page.Enter(m.ctx))
	}
}

func (m *Model) refresh() tea.Cmd {
	page := m.page
	return func() tea.Msg {
		return refreshedMsg(page.Refresh(m.ctx))
	}
}

func (m *Model) login(req models.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := m.auth.Login(m.ctx, req)
		return loggedInMsg(err)
	}
}

func (m *Model) register(req models.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		user, _, err := m.auth.Register(m.ctx, req)
		return registeredMsg(user, err)
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg(m.auth.Logout(m.ctx).Cause)
	}
}

func (m *Model) create(song models.Song) tea.Cmd {
	page := m.page
	return func() tea.Msg {
		created, err := page.Create(m.ctx, song)
		return songCreatedMsg(created, err)
	}
}

func (m *Model) remove(name string) tea.Cmd {
	page := m.page
	return func() tea.Msg {
		detail, err := page.Delete(m.ctx, name)
		return songRemovedMsg(name, detail, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	var keys []key.Binding

	switch m.view {
	case LoginView:
		body = styles.title.Render("Login") + "\n" + m.form.view()
		keys = []key.Binding{m.keys.submit, m.keys.next, m.keys.register, m.keys.forceQ}
	case RegisterView:
		body = styles.title.Render("Register") + "\n" + m.form.view()
		keys = []key.Binding{m.keys.submit, m.keys.next, m.keys.back, m.keys.forceQ}
	case MenuView:
		body = m.menu.View()
		keys = []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit}
	case SongsView:
		body = m.songs.View()
		keys = []key.Binding{m.keys.up, m.keys.down, m.keys.refresh, m.keys.back, m.keys.quit}
	case AddView, RemoveView, FindView:
		body = m.renderFormView()
		keys = []key.Binding{m.keys.submit, m.keys.next, m.keys.prev, m.keys.back, m.keys.forceQ}
	}

	var b strings.Builder
	b.WriteString(styles.banner.Render("SongHub"))
	b.WriteString("\n\n")
	b.WriteString(body)
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(m.message))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.ok.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(keys))
	return b.String()
}

func (m *Model) renderFormView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.page.Kind().Title()))
	b.WriteString("\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")

	switch {
	case m.view == FindView && m.result == nil:
		b.WriteString(styles.help.Render(fmt.Sprintf("Leave a field empty to match anything. Up to %d songs are shown.", m.deps.Sampler.Size())))
	case m.view == FindView && m.result.NoMatches:
	case m.view == FindView:
		b.WriteString(styles.help.Render(fmt.Sprintf("Showing %d of %d matching songs", len(m.result.Display), len(m.result.Filtered))))
		b.WriteString("\n")
		b.WriteString(m.songs.View())
	case len(m.songs.Items()) == 0:
		b.WriteString(styles.warn.Render(pages.MsgNoSongs))
	default:
		b.WriteString(m.songs.View())
	}
	return b.String()
}
