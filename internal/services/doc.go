// Package services talks to the remote song catalog backend.
//
// # Catalog API
//
// [CatalogAPI] covers the five backend calls the client makes: login, registration, listing,
// creating and removing songs. [Client] implements it over HTTP with JSON bodies.
//
// # Authentication
//
// Song calls carry the caller's credential. [Client] wraps its base [http.Client] in an
// [oauth2] transport built from a static token source, which sets the Authorization header.
// The client never validates or refreshes the token; a stale token fails at the backend.
//
// # Throttling
//
// Each request waits on a [rate.Limiter] configured from the [api] config section.
// With the default config the limiter never blocks.
//
// # Error Handling
//
// Non-success responses return an [APIError] with the status and the backend's "detail" text,
// which unwraps to [shared.ErrAPIRequest]. Transport failures wrap the same sentinel.
// [Message] picks the detail to show a user, falling back to a fixed message.
package services
