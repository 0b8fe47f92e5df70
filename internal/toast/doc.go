// Package toast implements the notification queue behind the dashboard's
// toast line.
//
// A Queue shows one toast at a time, strictly in the order they were
// enqueued. Each toast moves through three timed phases:
//
//	mount (10ms) -> visible for display (3s) -> hidden for exit (300ms) -> removed
//
// Only the head of the queue is ever visible, and a toast's Visible flag goes
// false -> true -> false once. Enqueue with an empty message is a skip: the
// head is dropped immediately, whatever phase it is in, and the loop restarts
// from the next toast without honouring the dropped toast's timers.
//
// The display loop runs in its own goroutine and exits when the queue
// drains; the next Enqueue starts a fresh one. All state is guarded by a
// mutex so request goroutines and the UI can share a Queue.
//
// Callers that only need to emit notifications should depend on Notifier.
// LogNotifier and Discard cover the CLI and background-refresh cases.
package toast
