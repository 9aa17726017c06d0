package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/tasks"
)

// openForm builds the form and one text input per field for the dialog in s.
func (m *Model) openForm(s tasks.State) {
	if s.Dialog == tasks.DialogEdit && s.Editing != nil {
		m.form = roster.NewEditForm(*s.Editing)
	} else {
		m.form = roster.NewForm()
	}

	m.inputs = make([]textinput.Model, len(roster.Fields))
	for i, f := range roster.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Label()
		in.CharLimit = 128
		in.SetValue(m.form.Value(f))
		m.inputs[i] = in
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.ctrl.CloseForm()
		m.sync(m.ctrl.State())
		return m, nil
	case msg.Type == tea.KeyEnter && m.focus < len(m.inputs)-1:
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.nextIn):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.prevIn):
		return m, m.moveFocus(-1)
	}

	var cmd tea.Cmd
	field := roster.Fields[m.focus]
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if v := m.inputs[m.focus].Value(); v != m.form.Value(field) {
		m.form.Set(field, v)
	}
	return m, cmd
}

// moveFocus marks the field being left as touched and focuses its neighbour.
func (m *Model) moveFocus(delta int) tea.Cmd {
	m.form.Touch(roster.Fields[m.focus])
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	candidate, ok := m.form.Submit()
	if !ok {
		m.notice = "Please fix the highlighted fields."
		return nil
	}
	m.notice = ""

	return func() tea.Msg {
		return operationDoneMsg(opSubmit, m.ctrl.Submit(m.ctx, candidate))
	}
}

func (m *Model) renderForm() string {
	var b strings.Builder

	title := "Add Employee"
	if m.state.Editing != nil {
		title = fmt.Sprintf("Edit Employee #%s", m.state.Editing.IDString())
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if m.form.HasDuplicates() {
		b.WriteString(styles.warn.Render("⚠ Already in use: " + m.form.Duplicates().Summary()))
		b.WriteString("\n\n")
	}

	for i, f := range roster.Fields {
		cursor := "  "
		if i == m.focus {
			cursor = styles.ok.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, styles.label.Render(f.Label()), m.inputs[i].View())
		if msg := m.form.VisibleError(f); msg != "" {
			b.WriteString("             ")
			b.WriteString(styles.err.Render(msg))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	switch {
	case m.state.Submitting:
		b.WriteString(m.spinner.View() + " Saving...\n")
	case m.form.Submittable():
		b.WriteString(styles.ok.Render("Ready to save"))
		b.WriteString("\n")
	}
	m.writeMessages(&b)

	b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	return b.String()
}
