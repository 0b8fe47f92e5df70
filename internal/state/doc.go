// Package state holds the dashboard's shared application state.
//
// # Overview
//
// A single Store is created at startup and handed to the API client, the
// background poller and the UI. It replaces ambient globals with one object
// whose lifetime is explicit:
//
//   - Loading: true while any tracked request is in flight, or while the
//     manual override is set. Requests are counted, so a fast request that
//     finishes first cannot clear the flag under a slower one.
//   - Sidebar: expanded or collapsed; defaults to expanded.
//   - Base URL: the API origin chosen from the environment at startup.
//   - Toasts: read-only access to the head of the notification queue.
//   - Snapshot: the latest dashboard data plus refresh health.
//
// # Concurrency Model
//
// All fields are guarded by a sync.RWMutex. Request goroutines call
// BeginRequest and the returned done func; the poller calls Update; the UI
// reads Snapshot and the flag accessors on every render.
//
// # Update Semantics
//
//	// Success: replace the data, clear the error
//	store.Update(data, nil)
//
//	// Failure: keep the old data, record the error
//	store.Update(state.Data{}, err)
//
// Two or more consecutive failures mark the snapshot offline.
//
// # Defensive Copying
//
// Update and Snapshot both clone slices so the UI can never observe a
// half-written refresh or mutate stored data.
//
// # Testing Considerations
//
// The zero Store is ready to use: sidebar open, not loading, no toast queue.
package state
