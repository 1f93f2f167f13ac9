// Package pages runs the screens of the song catalog client.
//
// A [Page] holds its own copy of the catalog and is entered once per visit. [Page.Enter]
// runs the session guard and, for the list, remove and find screens, fetches the catalog.
// Create and delete re-run the guard before contacting the backend; search works on the
// songs already held.
//
// Errors fall in three groups. A failed guard returns a session.RedirectError and nothing
// else happens. Bad input returns a models.ValidationError before any request. Backend
// failures return a [Failure] carrying the backend's detail or a fixed fallback, and leave
// the catalog as it was. [Message] turns any of them into the text a screen shows.
package pages
