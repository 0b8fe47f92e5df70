// Package hurricane provides an HTTP client for the Hurricane lead-finder API.
//
// # Overview
//
// Every exported Client method maps to exactly one API endpoint. Calls share
// one pipeline:
//
//  1. optional "started" info toast
//  2. loading bracket for the operations the dashboard shows a spinner for
//  3. JSON request against the configured base URL, session cookie attached
//  4. non-2xx: the {message, error} envelope becomes an *APIError; 401 also
//     redirects to "/" and matches ErrUnauthorized
//  5. 2xx: the {data: ...} envelope is unwrapped to the operation's payload
//  6. outcome toast (success, or error with the API's message)
//  7. optional "completed" info toast
//
// Errors are always returned after being reported, so callers can branch
// on them (for example to stop a page load after a redirect).
//
// # Notifications
//
// The client only knows toast.Notifier. The TUI passes its *toast.Queue, the
// CLI a toast.LogNotifier, and background refreshes use WithNotifier(nil) so
// polling stays silent.
//
// # Sessions
//
// Sign-in happens through Google OAuth: AuthURL returns the consent page and
// FinishAuth trades the returned code for a session cookie. The cookie lives
// in the client's jar; internal/session persists it between runs.
//
// # Requests
//
// All requests carry Content-Type and Accept of application/json,
// Cache-Control: no-cache and a hurricane-cli User-Agent. No timeout is set
// unless Options.Timeout is non-zero. Nothing is retried.
package hurricane
