package adapter_bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	editor "github.com/ionut-t/previewedit/core"
)

// popoverHeight is the number of rows a popover takes, borders included.
const popoverHeight = 3

// popoverModel holds the widget state of the popover currently drawn under
// the toolbar. The surface owns which popover is open; this only mirrors it.
type popoverModel struct {
	kind    editor.PopoverKind
	color   int
	size    int
	stamp   int
	snippet int
	input   textinput.Model
}

func newPopoverModel() popoverModel {
	input := textinput.New()
	input.Prompt = "snippet: "
	input.Placeholder = `text, \n for a line break`
	return popoverModel{input: input}
}

// syncPopover resets the widget state whenever the surface opens, switches
// or closes a popover, and resizes the panes around it.
func (m *Model) syncPopover() {
	kind := m.surface.ActivePopover()
	if kind == m.popover.kind {
		return
	}

	m.log.Debug("popover synced", zap.Stringer("from", m.popover.kind), zap.Stringer("to", kind))
	m.popover.kind = kind

	m.popover.input.Blur()
	if kind == editor.PopoverStamp {
		m.popover.stamp = 0
	}
	if kind == editor.PopoverSnippet {
		m.popover.snippet = 0
		m.popover.input.SetValue("")
		m.popover.input.Focus()
	}

	m.layoutPanes()
}

func (m *Model) handlePopoverKey(msg tea.KeyMsg) tea.Cmd {
	p := &m.popover

	if key.Matches(msg, m.keys.Close) {
		m.surface.ClickOutside()
		m.syncPopover()
		return nil
	}

	switch p.kind {
	case editor.PopoverColor:
		switch {
		case key.Matches(msg, m.keys.Prev):
			p.color = cycle(p.color, -1, len(m.palette))
		case key.Matches(msg, m.keys.Next):
			p.color = cycle(p.color, 1, len(m.palette))
		case key.Matches(msg, m.keys.Up):
			p.size = min(p.size+1, len(m.sizes)-1)
		case key.Matches(msg, m.keys.Down):
			p.size = max(p.size-1, 0)
		case key.Matches(msg, m.keys.Submit):
			if len(m.palette) == 0 || len(m.sizes) == 0 {
				return nil
			}
			_ = m.surface.SubmitColor(editor.ColorSize{Color: m.palette[p.color], Size: m.sizes[p.size]})
		}

	case editor.PopoverStamp:
		stamps := m.surface.Toolbar().Stamps()
		switch {
		case key.Matches(msg, m.keys.Prev):
			p.stamp = cycle(p.stamp, -1, len(stamps))
		case key.Matches(msg, m.keys.Next):
			p.stamp = cycle(p.stamp, 1, len(stamps))
		case key.Matches(msg, m.keys.Submit) && p.stamp < len(stamps):
			_ = m.surface.SubmitStamp(stamps[p.stamp])
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
			if i := int(msg.Runes[0] - '1'); i < len(stamps) {
				p.stamp = i
				_ = m.surface.SubmitStamp(stamps[i])
			}
		}

	case editor.PopoverSnippet:
		switch {
		case key.Matches(msg, m.keys.Up) && len(m.snippets) > 0:
			p.snippet = cycle(p.snippet, -1, len(m.snippets))
			p.input.SetValue(displaySnippet(m.snippets[p.snippet]))
			p.input.CursorEnd()
		case key.Matches(msg, m.keys.Down) && len(m.snippets) > 0:
			p.snippet = cycle(p.snippet, 1, len(m.snippets))
			p.input.SetValue(displaySnippet(m.snippets[p.snippet]))
			p.input.CursorEnd()
		case key.Matches(msg, m.keys.Submit):
			_ = m.surface.SubmitSnippet(editor.ExpandSnippet(undisplaySnippet(p.input.Value())))
		default:
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return cmd
		}
	}

	m.syncPopover()
	return nil
}

func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// Tabs cannot be typed into the input, so presets show them as \t.
func displaySnippet(s string) string {
	return strings.ReplaceAll(s, "\t", `\t`)
}

func undisplaySnippet(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

func (m *Model) renderPopover() string {
	p := m.popover
	var content string

	switch p.kind {
	case editor.PopoverColor:
		var items []string
		for i, c := range m.palette {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(cssToTerminal(c))).Render("■ " + c)
			if i == p.color {
				swatch = m.theme.PopoverSelectedStyle.Render("■ " + c)
			}
			items = append(items, swatch)
		}
		size := "-"
		if len(m.sizes) > 0 {
			size = fmt.Sprintf("%dpx", m.sizes[p.size])
		}
		content = strings.Join(items, " ") + "  size: " + size

	case editor.PopoverStamp:
		var items []string
		for i, s := range m.surface.Toolbar().Stamps() {
			label := fmt.Sprintf("%d:%s", i+1, s)
			if i >= 9 {
				label = s
			}
			if i == p.stamp {
				label = m.theme.PopoverSelectedStyle.Render(label)
			}
			items = append(items, label)
		}
		content = strings.Join(items, " ")

	case editor.PopoverSnippet:
		content = p.input.View()
	}

	return m.theme.PopoverStyle.Width(max(1, m.width-2)).Render(content)
}

// insidePopover reports whether screen row y falls on the popover.
func (m *Model) insidePopover(y int) bool {
	return y >= 1 && y < 1+popoverHeight
}

// cssToTerminal maps the named colors lipgloss cannot parse to hex values.
func cssToTerminal(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	if hex, ok := cssNames[strings.ToLower(c)]; ok {
		return hex
	}
	return "252"
}

var cssNames = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"orange": "#ffa500",
	"purple": "#800080",
	"yellow": "#ffff00",
	"gray":   "#808080",
	"grey":   "#808080",
	"teal":   "#008080",
	"navy":   "#000080",
	"maroon": "#800000",
	"pink":   "#ffc0cb",
}
