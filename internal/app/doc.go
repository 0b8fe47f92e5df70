// Package app wires configuration, preferences, the saved session, the
// shared state store and the API client into a Runtime, then runs either
// the dashboard or a single CLI command on top of it.
//
// # Startup
//
//	Setup(opts, mode)
//	  ├─> config.LoadDotEnv()   .env, HURRICANE_ENV, HURRICANE_API_URL
//	  ├─> config.Load()         ~/.config/hurricane/config.toml
//	  ├─> newLogger()           log file (TUI) or stderr (CLI)
//	  ├─> prefs.Load()          theme, sidebar, metrics period
//	  ├─> toast.NewQueue()      TUI only; CLI logs toasts immediately
//	  ├─> state.New()           loading, sidebar, base URL, snapshot
//	  ├─> hurricane.NewClient() cookie jar, notifier, loading tracker
//	  └─> session.Restore()     cookies saved by an earlier run
//
// Run builds on Setup for the dashboard: it loads the first snapshot,
// starts the poller and blocks in ui.Run until the user quits or the
// context is cancelled. Close saves the session cookies.
//
// # Polling
//
// The poller reloads the snapshot with a silent client so background
// refreshes never raise toasts. Each refresh fetches metrics, the account,
// leads, replies, keywords and subreddits concurrently; any failure keeps
// the previous data and marks the store as failed. Consecutive failures
// back off exponentially from the poll interval up to five minutes.
package app
