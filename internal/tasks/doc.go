// Package tasks reconciles the employee list screen with the remote roster service.
//
// # List Controller
//
// [Controller] owns the record store and the display settings (search, sort order, page). It exposes:
//
//  1. Remote operations: [Controller.Refresh], [Controller.Add], [Controller.Edit], [Controller.Remove]
//     - Every successful mutation re-fetches the whole store before the dialog closes
//     - On failure the store is kept, the open dialog is closed and a generic message is surfaced
//     - At most one mutation is in flight; overlapping calls fail with [shared.ErrBusy]
//
//  2. Dialog intents: create and edit forms, and the two-phase delete confirmation
//     - [Controller.MarkDelete] subscribes the confirmation to the cancel key on [SignalBus]
//     - Closing the confirmation for any reason releases that subscription
//
//  3. Display intents: search, sort and page navigation
//     - Search and sort changes return to page 1
//     - Page navigation ignores targets outside the current page count
//
// The controller holds its mutex only while changing state, never across a service call, so the TUI can run
// operations inside commands and render [State] snapshots from an OnChange observer.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Sends use select with default so a slow reader
// never blocks an operation.
//
// # Bulk Operations
//
// [BulkFetch] looks up many ids with a bounded worker pool sharing one rate limiter. [Export] writes the
// filtered, sorted store through the formatter package.
package tasks
