// Package server provides HTTP routing and middleware for the web front end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers method patterns on an [http.ServeMux], so a path can serve
// GET and POST through separate handlers.
//
// # Middleware
//
//   - [RequestID] : assigns an X-Request-ID to each request and stores it in the context
//   - [Logging] : logs method, path, status and duration with charmbracelet/log
//   - [Recover] : converts handler panics into 500 responses
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
