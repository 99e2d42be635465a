package adapter_bubbletea

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the editor key bindings. Toolbar bindings map a key to a
// toolbar entry name, so pressing it behaves exactly like clicking the entry.
type KeyMap struct {
	Toolbar map[string]key.Binding

	Close       key.Binding
	Submit      key.Binding
	Prev, Next  key.Binding
	Up, Down    key.Binding
	Copy, Paste key.Binding
	Save        key.Binding
	ToggleSafe  key.Binding
	SwitchFocus key.Binding
	Help        key.Binding
}

var toolbarOrder = []string{"H1", "H2", "H3", "Bold", "Italic", "Font", "Tabs", "Stamps"}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toolbar: map[string]key.Binding{
			"H1":     key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "h1")),
			"H2":     key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "h2")),
			"H3":     key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "h3")),
			"Bold":   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
			"Italic": key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "italic")),
			"Font":   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "font")),
			"Tabs":   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "tabs")),
			"Stamps": key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "stamps")),
		},

		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Prev:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		Next:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "bigger/previous preset")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "smaller/next preset")),

		Copy:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Paste:       key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		ToggleSafe:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "safe/unsafe")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "editor/preview")),
		Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	}
}

// entryFor returns the toolbar entry bound to msg.
func (k KeyMap) entryFor(msg tea.KeyMsg) (string, bool) {
	for _, name := range toolbarOrder {
		if b, ok := k.Toolbar[name]; ok && key.Matches(msg, b) {
			return name, true
		}
	}
	for name, b := range k.Toolbar {
		if key.Matches(msg, b) {
			return name, true
		}
	}
	return "", false
}

func (k KeyMap) toolbarBindings() []key.Binding {
	bindings := make([]key.Binding, 0, len(k.Toolbar))
	for _, name := range toolbarOrder {
		if b, ok := k.Toolbar[name]; ok {
			bindings = append(bindings, b)
		}
	}
	return bindings
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toolbar["Bold"], k.Toolbar["Font"], k.Toolbar["Stamps"], k.SwitchFocus, k.Save, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.toolbarBindings(),
		{k.Close, k.Submit, k.Prev, k.Next, k.Up, k.Down},
		{k.Copy, k.Paste, k.Save, k.ToggleSafe, k.SwitchFocus, k.Help},
	}
}

var _ help.KeyMap = KeyMap{}
