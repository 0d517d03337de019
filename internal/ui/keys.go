package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"halil/internal/config"
)

type keyMap struct {
	Quit         key.Binding
	Add          key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	Filter       key.Binding
	FilterAll    key.Binding
	FilterActive key.Binding
	FilterDone   key.Binding
	NewCategory  key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	OptionLeft   key.Binding
	OptionRight  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:          key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Up:           key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:         key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Toggle:       key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(helpName(k.Toggle), "toggle")),
		Delete:       key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		MoveUp:       key.NewBinding(key.WithKeys(k.MoveUp), key.WithHelp(k.MoveUp, "move up")),
		MoveDown:     key.NewBinding(key.WithKeys(k.MoveDown), key.WithHelp(k.MoveDown, "move down")),
		Filter:       key.NewBinding(key.WithKeys(k.Filter), key.WithHelp(k.Filter, "next filter")),
		FilterAll:    key.NewBinding(key.WithKeys(k.FilterAll), key.WithHelp(k.FilterAll, "all")),
		FilterActive: key.NewBinding(key.WithKeys(k.FilterActive), key.WithHelp(k.FilterActive, "ongoing")),
		FilterDone:   key.NewBinding(key.WithKeys(k.FilterDone), key.WithHelp(k.FilterDone, "done")),
		NewCategory:  key.NewBinding(key.WithKeys(k.NewCategory), key.WithHelp(k.NewCategory, "new category")),
		Confirm:      key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "save")),
		Cancel:       key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		NextField:    key.NewBinding(key.WithKeys(k.NextField), key.WithHelp(k.NextField, "next field")),
		PrevField:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		OptionLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev category")),
		OptionRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next category")),
	}
}

// ShortHelp and FullHelp make keyMap a help.KeyMap for the list screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.MoveUp, k.MoveDown, k.Filter, k.NewCategory, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Toggle, k.Delete, k.NewCategory},
		{k.Filter, k.FilterAll, k.FilterActive, k.FilterDone},
		{k.Quit},
	}
}

// formKeys is the help.KeyMap shown while a form is open.
type formKeys struct {
	keys keyMap
}

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.keys.NextField, f.keys.OptionLeft, f.keys.OptionRight, f.keys.Confirm, f.keys.Cancel}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}

func helpName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
