// Package web serves the song catalog client as server-rendered HTML pages.
//
// # Routes
//
//	GET  /login, POST /login       → login form
//	GET  /register, POST /register → account creation
//	POST /logout                   → clear the session cookie
//	GET  /                         → menu
//	GET  /songs                    → catalog list
//	GET  /songs/add, POST          → add a song
//	GET  /songs/remove, POST       → remove songs by name
//	GET  /songs/find, POST         → search and show up to three matches
//
// Every route except login, register and logout is wrapped in [App.RequireSession]. Without a
// credential in the cookie the browser is sent to the login page with 303 See Other and the
// backend is never called.
//
// # Session State
//
// The credential lives in a signed gorilla/sessions cookie. Each request wraps its cookie session in
// a session.Store, so the same session.Guard and pages.Page used by the terminal front ends run
// here unchanged. Logout expires the cookie.
//
// # Templates
//
// Views are html/template files embedded from templates/, each rendered inside layout.html.
package web
