package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/desertthunder/emx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	FormView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	ctrl    *tasks.Controller
	feed    *StateFeed
	logger  *log.Logger
	view    ViewState
	state   tasks.State
	width   int
	height  int
	cursor  int
	search  textinput.Model
	typing  bool // search input has focus
	form    *roster.Form
	inputs  []textinput.Model
	focus   int
	notice  string
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model around a list controller.
func NewModel(ctx context.Context, ctrl *tasks.Controller, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	search := textinput.New()
	search.Placeholder = "Search name, email, address, phone or id"
	search.Prompt = "/ "
	search.CharLimit = 64

	return &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		logger:  logger,
		view:    ListView,
		state:   ctrl.State(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Listen makes the model follow snapshots published to feed while the program runs.
func (m *Model) Listen(feed *StateFeed) *Model {
	m.feed = feed
	return m
}

// Init loads the store.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refresh(), m.spinner.Tick}
	if m.feed != nil {
		cmds = append(cmds, m.feed.next(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		default:
			if m.typing {
				return m.handleSearchKeys(msg)
			}
			return m.handleListKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return m.renderList()
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStateChanged:
		m.sync(msg.data.(tasks.State))
	case MsgStateFed:
		m.sync(m.ctrl.State())
		return m, m.feed.next(m.ctx)
	case MsgOperationDone:
		data := msg.data.(struct {
			op  operation
			err error
		})
		if data.err != nil {
			m.logger.Warn("operation failed", "op", data.op, "error", data.err)
		}
		m.sync(m.ctrl.State())
	}
	return m, nil
}

// sync applies a controller snapshot and moves between views to follow the open dialog.
func (m *Model) sync(s tasks.State) {
	m.state = s
	m.keys.cancel.SetEnabled(s.Dialog == tasks.DialogConfirmDelete)

	switch s.Dialog {
	case tasks.DialogConfirmDelete:
		m.view = ConfirmView
	case tasks.DialogCreate, tasks.DialogEdit:
		if m.view != FormView || m.form == nil {
			m.openForm(s)
		}
		m.view = FormView
		m.form.SetExisting(m.ctrl.Records())
	default:
		m.view = ListView
		m.form = nil
		m.inputs = nil
	}

	if n := len(s.View.Records); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.state.View.Records)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.prev):
		if m.ctrl.PreviousPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.next):
		if m.ctrl.NextPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.search):
		m.typing = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.clear):
		m.search.SetValue("")
		m.ctrl.ClearSearch()
		m.cursor = 0
	case key.Matches(msg, m.keys.sort):
		m.ctrl.ToggleSort()
		m.cursor = 0
	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.add):
		m.report(m.ctrl.OpenCreate())
	case key.Matches(msg, m.keys.edit):
		if id, ok := m.selectedID(); ok {
			m.report(m.ctrl.OpenEdit(id))
		}
	case key.Matches(msg, m.keys.remove):
		if id, ok := m.selectedID(); ok {
			m.report(m.ctrl.MarkDelete(id))
		}
	}

	m.sync(m.ctrl.State())
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.typing = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.SetSearch(m.search.Value())
		m.cursor = 0
		m.sync(m.ctrl.State())
	}
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.confirmDelete()
	case key.Matches(msg, m.keys.no):
		m.ctrl.CancelDelete()
	case key.Matches(msg, m.keys.cancel):
		m.ctrl.Signals().Emit()
	}

	m.sync(m.ctrl.State())
	return m, nil
}

func (m *Model) selectedID() (int, bool) {
	records := m.state.View.Records
	if m.cursor < 0 || m.cursor >= len(records) || !records[m.cursor].HasID() {
		return 0, false
	}
	return records[m.cursor].SortKey(), true
}

func (m *Model) report(err error) {
	if err != nil {
		m.notice = err.Error()
		m.logger.Debug("intent rejected", "error", err)
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return operationDoneMsg(opRefresh, m.ctrl.Refresh(m.ctx))
	}
}

func (m *Model) confirmDelete() tea.Cmd {
	return func() tea.Msg {
		return operationDoneMsg(opDelete, m.ctrl.ConfirmDelete(m.ctx))
	}
}

func (m *Model) renderList() string {
	var b strings.Builder

	title := fmt.Sprintf("Employees (%d) · %s first", m.state.Count, m.state.Display.Order)
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if m.typing || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.state.Loading && m.state.Count == 0:
		b.WriteString(m.spinner.View() + " Loading employees...\n")
	case len(m.state.View.Records) == 0:
		b.WriteString(styles.help.Render("No employees found."))
		b.WriteString("\n")
	default:
		b.WriteString(renderTable(m.state.View.Records, m.cursor, m.width))
		b.WriteString("\n")
		b.WriteString(renderPager(m.state.View, m.state.Window))
		b.WriteString("\n")
	}

	if m.state.Loading && m.state.Count > 0 {
		b.WriteString(m.spinner.View() + " Refreshing...\n")
	}
	m.writeMessages(&b)

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.listHelp()))
	return b.String()
}

func (m *Model) renderConfirm() string {
	var b strings.Builder

	pending := m.state.PendingDelete
	if pending == nil {
		return m.renderList()
	}

	b.WriteString(styles.title.Render(fmt.Sprintf("Delete %s (#%s)?", pending.Name, pending.IDString())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", pending.Email, pending.Phone)

	if m.state.Submitting {
		b.WriteString(m.spinner.View() + " Deleting...\n")
	}
	m.writeMessages(&b)

	b.WriteString(m.help.ShortHelpView(m.keys.confirmHelp()))
	return b.String()
}

func (m *Model) writeMessages(b *strings.Builder) {
	if m.state.Error != "" {
		b.WriteString(styles.err.Render(m.state.Error))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(styles.warn.Render(m.notice))
		b.WriteString("\n")
	}
}
