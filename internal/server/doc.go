// Package server provides HTTP routing, middleware, and the JSON API for the local web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// Three handlers make up the API surface:
//
//   - [AuthHandler] manages the account directory and the active session
//   - [WatchlistHandler] mutates the active identity's watchlist and serves its resolved form
//   - [MovieHandler] proxies catalog search, browse rails, details, and trailer lookup
//
// # Current Usage
//
// When the user runs the serve command, an HTTP server starts on the configured
// host and port (localhost:3000 by default) and exposes the API under /api/.
// The server is intended for local single-user use; session state lives in the
// same storage the CLI and TUI read, so all three surfaces observe the same
// active identity.
package server
