// Package notify provides the one-way notification port used to surface
// user-facing status messages from pipeline operations.
//
// Notifications are fire-and-forget: emission is best-effort, in order, with
// no acknowledgement or queuing guarantees. Sinks must not block for long;
// a slow sink delays the emitting operation.
package notify
