package web

import (
	"net/http"
	"strings"

	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/session"
)

func formValues(r *http.Request, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = strings.TrimSpace(r.FormValue(k))
	}
	return values
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	a.render(w, r, st, http.StatusOK, "login", viewData{Title: "Login"})
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	form := formValues(r, "email")
	req := models.LoginRequest{Email: form["email"], Password: r.FormValue("password")}

	next, err := a.authenticator(st).Login(r.Context(), req)
	if err != nil {
		a.render(w, r, st, status(err), "login", viewData{Title: "Login", Message: pages.Message(err), Form: form})
		return
	}

	a.save(w, r, st)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (a *App) registerForm(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	a.render(w, r, st, http.StatusOK, "register", viewData{Title: "Register"})
}

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	form := formValues(r, "email", "username")
	req := models.RegisterRequest{Email: form["email"], Username: form["username"], Password: r.FormValue("password")}

	_, next, err := a.authenticator(st).Register(r.Context(), req)
	if err != nil {
		a.render(w, r, st, status(err), "register", viewData{Title: "Register", Message: pages.Message(err), Form: form})
		return
	}

	st.store.addFlash(pages.MsgRegistered)
	a.save(w, r, st)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	redirect := a.authenticator(st).Logout(r.Context())
	a.redirect(w, r, st, redirect)
}

// enter runs [pages.Page.Enter] and handles a redirect. It reports whether the handler should continue.
func (a *App) enter(w http.ResponseWriter, r *http.Request, st *requestState, page *pages.Page) bool {
	err := page.Enter(r.Context())
	if _, ok := session.AsRedirect(err); ok {
		a.redirect(w, r, st, err)
		return false
	}
	return true
}

func (a *App) menu(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindMain, st)
	if !a.enter(w, r, st, page) {
		return
	}
	a.render(w, r, st, http.StatusOK, "menu", viewData{Title: page.Kind().Title(), LoggedIn: true})
}

func (a *App) songs(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindSongs, st)
	if !a.enter(w, r, st, page) {
		return
	}
	a.render(w, r, st, http.StatusOK, "songs", viewData{
		Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs(),
	})
}

func (a *App) addForm(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindAdd, st)
	if !a.enter(w, r, st, page) {
		return
	}
	a.render(w, r, st, http.StatusOK, "add", viewData{Title: page.Kind().Title(), LoggedIn: true})
}

func (a *App) add(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindAdd, st)
	if !a.enter(w, r, st, page) {
		return
	}

	form := formValues(r, "songname", "songtype", "language", "keyword")
	song := models.Song{Name: form["songname"], Genre: form["songtype"], Language: form["language"], Keyword: form["keyword"]}

	_, err := page.Create(r.Context(), song)
	if _, ok := session.AsRedirect(err); ok {
		a.redirect(w, r, st, err)
		return
	}

	data := viewData{Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs()}
	if err != nil {
		data.Form = form
	}
	a.render(w, r, st, status(err), "add", data)
}

func (a *App) removeForm(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindRemove, st)
	if !a.enter(w, r, st, page) {
		return
	}
	a.render(w, r, st, http.StatusOK, "remove", viewData{
		Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs(),
	})
}

func (a *App) remove(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindRemove, st)
	if !a.enter(w, r, st, page) {
		return
	}

	name := r.FormValue("songname")
	detail, err := page.Delete(r.Context(), name)
	if _, ok := session.AsRedirect(err); ok {
		a.redirect(w, r, st, err)
		return
	}

	data := viewData{Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs()}
	if err != nil {
		data.Form = map[string]string{"songname": name}
	} else if detail != "" {
		data.Notices = []string{detail}
	}
	a.render(w, r, st, status(err), "remove", data)
}

func (a *App) findForm(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindFind, st)
	if !a.enter(w, r, st, page) {
		return
	}
	a.render(w, r, st, http.StatusOK, "find", viewData{
		Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs(),
	})
}

func (a *App) find(w http.ResponseWriter, r *http.Request) {
	st := a.state(r)
	page := a.page(pages.KindFind, st)
	if !a.enter(w, r, st, page) {
		return
	}

	form := formValues(r, "name", "genre", "language")
	result := page.Search(catalog.Criteria{Name: form["name"], Genre: form["genre"], Language: form["language"]})

	a.render(w, r, st, http.StatusOK, "find", viewData{
		Title: page.Kind().Title(), LoggedIn: true, Message: page.Message(), Songs: page.Songs(), Result: &result, Form: form,
	})
}
