// Package server provides the local HTTP plumbing for interactive Spotify
// authentication.
//
// Export needs a user-scoped bearer token. The [Flow] helper starts a
// temporary server on the configured callback address, opens the browser to
// the authorization page, captures exactly one callback, exchanges the code
// for a token, and shuts the server down.
//
// The [Router] and [Middleware] types are a thin layer over [http.ServeMux]
// with method filtering; [CallbackHandler] implements [Handler] so the
// callback route registers itself.
package server
