package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/emx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStateChanged MsgKind = iota
	MsgStateFed
	MsgOperationDone
)

// operation names a remote call started from the TUI.
type operation int

const (
	opRefresh operation = iota
	opSubmit
	opDelete
)

func (o operation) String() string {
	switch o {
	case opSubmit:
		return "submit"
	case opDelete:
		return "delete"
	default:
		return "refresh"
	}
}

// StateChanged is the constructor for [MsgStateChanged].
//
// Controller observers run on the program's own goroutine, where [tea.Program.Send] blocks forever. Wire them
// to a [StateFeed] instead.
func StateChanged(s tasks.State) tea.Msg {
	return Msg{kind: MsgStateChanged, data: s}
}

// StateFeed wakes a running program when the controller changes.
//
// Publish never blocks. Wake-ups the program has not picked up yet collapse into one; the model re-reads the
// controller's current state when it wakes, so an older snapshot never overwrites a newer one.
type StateFeed struct {
	ch chan struct{}
}

func NewStateFeed() *StateFeed {
	return &StateFeed{ch: make(chan struct{}, 1)}
}

// Publish is a [tasks.Options.OnChange] observer.
func (f *StateFeed) Publish(tasks.State) {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// next waits for the following wake-up. It yields nil once ctx is done.
func (f *StateFeed) next(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ch:
			return Msg{kind: MsgStateFed}
		case <-ctx.Done():
			return nil
		}
	}
}

// operationDoneMsg is the constructor for [MsgOperationDone]
func operationDoneMsg(op operation, err error) Msg {
	return Msg{
		kind: MsgOperationDone,
		data: struct {
			op  operation
			err error
		}{op, err},
	}
}
