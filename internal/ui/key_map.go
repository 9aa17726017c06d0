package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	prev    key.Binding
	next    key.Binding
	search  key.Binding
	clear   key.Binding
	sort    key.Binding
	add     key.Binding
	edit    key.Binding
	remove  key.Binding
	refresh key.Binding
	nextIn  key.Binding
	prevIn  key.Binding
	submit  key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	cancel  key.Binding // only enabled while a delete confirmation is open
	quit    key.Binding
}

func newKeyMap() keyMap {
	k := keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle sort")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		nextIn:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevIn:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		submit:  key.NewBinding(key.WithKeys("ctrl+s", "enter"), key.WithHelp("ctrl+s", "save")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "keep")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.cancel.SetEnabled(false)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.edit, k.remove, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prev, k.next},
		{k.search, k.clear, k.sort, k.refresh},
		{k.add, k.edit, k.remove, k.quit},
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.add, k.edit, k.remove, k.search, k.sort, k.prev, k.next, k.quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.nextIn, k.prevIn, k.submit, k.back}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.yes, k.no, k.cancel}
}
