// Package ui implements an interactive terminal interface for the employee roster using bubbletea's Elm architecture.
//
// The TUI follows the list controller's open dialog across three views:
//  1. [ListView] : Search, sort and page through employees
//  2. [FormView] : Add or edit an employee with live validation and duplicate warnings
//  3. [ConfirmView] : Confirm or cancel a delete
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Remote calls run inside commands; controller snapshots arrive through a [StateFeed] so loading states render
// while a call is in flight.
//
// The esc binding on the confirmation emits the controller's cancel signal. It is enabled only while a delete
// confirmation is open.
package ui
