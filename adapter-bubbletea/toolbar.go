package adapter_bubbletea

import (
	"github.com/charmbracelet/lipgloss"

	editor "github.com/ionut-t/previewedit/core"
)

// toolbarItem is an entry as drawn on the toolbar row, with its column span.
type toolbarItem struct {
	name     string
	rendered string
	start    int
	end      int
}

func (m *Model) toolbarItems() []toolbarItem {
	active := m.surface.ActivePopover()
	entries := m.surface.Toolbar().Entries()

	items := make([]toolbarItem, 0, len(entries))
	x := 0
	for _, e := range entries {
		style := m.theme.ToolbarEntryStyle
		if e.TriggersPopover() && e.Popover == active {
			style = m.theme.ToolbarActiveStyle
		}
		rendered := style.Render(e.Affordance)
		w := lipgloss.Width(rendered)
		items = append(items, toolbarItem{name: e.Name, rendered: rendered, start: x, end: x + w})
		x += w
	}
	return items
}

func (m *Model) renderToolbar() string {
	var row string
	for _, item := range m.toolbarItems() {
		row += item.rendered
	}
	if pad := m.width - lipgloss.Width(row); pad > 0 {
		row += m.theme.ToolbarStyle.Render(lipgloss.PlaceHorizontal(pad, lipgloss.Left, ""))
	}
	return row
}

// toolbarEntryAt returns the entry drawn at column x of the toolbar row.
func (m *Model) toolbarEntryAt(x int) (string, bool) {
	for _, item := range m.toolbarItems() {
		if x >= item.start && x < item.end {
			return item.name, true
		}
	}
	return "", false
}

// activeEntry names the toolbar entry whose popover is open.
func (m *Model) activeEntry() string {
	active := m.surface.ActivePopover()
	if active == editor.PopoverNone {
		return ""
	}
	for _, e := range m.surface.Toolbar().Entries() {
		if e.Popover == active {
			return e.Name
		}
	}
	return ""
}
