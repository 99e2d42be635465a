package adapter_bubbletea

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/previewedit/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/previewedit/core"
)

// VisualLineInfo holds data about a single line as it appears visually after wrapping.
type VisualLineInfo struct {
	Content         string // The text content of this visual line segment
	LogicalRow      int    // The original row index in the buffer
	LogicalStartCol int    // The starting rune column of this segment in its logical line
	Offset          int    // The rune offset of the segment's first rune in the buffer
	IsFirstSegment  bool   // Flag if this is the first visual segment for the logical line
}

func (v VisualLineInfo) end() int {
	return v.Offset + utf8.RuneCountInString(v.Content)
}

type segment struct {
	start, end int
}

// calculateLineNumberWidth computes the width needed for line numbers
func (m *Model) calculateLineNumberWidth(totalLines int) int {
	if !m.showLineNumbers {
		return 0
	}
	maxWidth := len(strconv.Itoa(max(1, totalLines)))
	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

// calculateVisualLayout wraps every logical line to the editor pane and
// locates the caret's visual row.
func (m *Model) calculateVisualLayout() {
	lines := strings.Split(m.surface.GetContent(), "\n")

	m.lineNumWidth = m.calculateLineNumberWidth(len(lines))
	// One column stays free for the caret after the last rune.
	availableWidth := max(1, m.viewport.Width-m.lineNumWidth-1)

	layout := make([]VisualLineInfo, 0, len(lines))
	offset := 0
	for row, line := range lines {
		runes := []rune(line)
		for i, seg := range wrapLine(runes, availableWidth) {
			layout = append(layout, VisualLineInfo{
				Content:         string(runes[seg.start:seg.end]),
				LogicalRow:      row,
				LogicalStartCol: seg.start,
				Offset:          offset + seg.start,
				IsFirstSegment:  i == 0,
			})
		}
		offset += len(runes) + 1
	}

	m.visualLayout = layout
	m.cursorVisualRow = cursorVisualRow(layout, m.surface.Head())
}

// cursorVisualRow finds the visual row holding head. An offset on a soft
// wrap boundary belongs to the start of the following segment.
func cursorVisualRow(layout []VisualLineInfo, head int) int {
	for i, vli := range layout {
		if head < vli.Offset || head > vli.end() {
			continue
		}
		if head == vli.end() && i+1 < len(layout) && layout[i+1].LogicalRow == vli.LogicalRow {
			continue
		}
		return i
	}
	return max(0, len(layout)-1)
}

// cursorPosition returns the caret's 1-based line and column.
func (m *Model) cursorPosition() (row, col int) {
	if len(m.visualLayout) == 0 {
		return 1, 1
	}
	vli := m.visualLayout[m.cursorVisualRow]
	return vli.LogicalRow + 1, vli.LogicalStartCol + (m.surface.Head() - vli.Offset) + 1
}

func formatPosition(row, col, selected int) string {
	if selected > 0 {
		return fmt.Sprintf("%d/%d (%d selected) ", row, col, selected)
	}
	return fmt.Sprintf("%d/%d ", row, col)
}

// updateVisualTopLine adjusts the top line so the caret stays inside the pane.
func (m *Model) updateVisualTopLine() {
	total := len(m.visualLayout)
	height := m.viewport.Height

	if m.cursorVisualRow < m.topLine {
		m.topLine = m.cursorVisualRow
	} else if m.cursorVisualRow >= m.topLine+height {
		m.topLine = m.cursorVisualRow - height + 1
	}

	maxPossibleTopLine := max(0, total-height)
	m.topLine = max(0, min(m.topLine, maxPossibleTopLine))

	m.viewport.YOffset = 0
}

// wrapLine splits a line into segments of at most width runes, breaking after
// the last space that fits. Every rune belongs to exactly one segment so
// buffer offsets map back to screen cells.
func wrapLine(runes []rune, width int) []segment {
	n := len(runes)
	if width <= 0 || n <= width {
		return []segment{{0, n}}
	}

	var segments []segment
	start := 0
	for start < n {
		if start+width >= n {
			segments = append(segments, segment{start, n})
			break
		}
		end := start + width
		for i := end - 1; i > start; i-- {
			if unicode.IsSpace(runes[i]) {
				end = i + 1
				break
			}
		}
		segments = append(segments, segment{start, end})
		start = end
	}
	return segments
}

// renderVisibleSlice draws the rows between topLine and the pane height into
// the editor viewport: line numbers, syntax colors, selection and caret.
func (m *Model) renderVisibleSlice() {
	if m.highlighter != nil {
		m.highlighter.Tokenize(m.surface.GetContent())
	}

	sel := m.surface.Selection()
	head := m.surface.Head()
	cursorRow := -1
	if len(m.visualLayout) > 0 {
		cursorRow = m.visualLayout[m.cursorVisualRow].LogicalRow
	}

	var sb strings.Builder
	end := min(len(m.visualLayout), m.topLine+m.viewport.Height)
	for i := m.topLine; i < end; i++ {
		vli := m.visualLayout[i]
		if i > m.topLine {
			sb.WriteByte('\n')
		}

		if m.lineNumWidth > 0 {
			style := m.theme.LineNumberStyle
			if vli.LogicalRow == cursorRow {
				style = m.theme.CurrentLineNumberStyle
			}
			number := ""
			if vli.IsFirstSegment {
				number = strconv.Itoa(vli.LogicalRow + 1)
			}
			sb.WriteString(style.Width(m.lineNumWidth - 1).Render(number))
			sb.WriteByte(' ')
		}

		m.renderSegment(&sb, vli, sel, head, i == m.cursorVisualRow)
	}

	if m.surface.GetContent() == "" && m.placeholder != "" {
		sb.WriteString(m.theme.PlaceholderStyle.Render(m.placeholder))
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) renderSegment(sb *strings.Builder, vli VisualLineInfo, sel editor.Selection, head int, isCursorRow bool) {
	var spans []highlighter.Span
	if m.highlighter != nil {
		spans = highlighter.Spans(m.highlighter.Line(vli.LogicalRow))
	}

	showCursor := isCursorRow && m.isFocused && m.focus == focusEditor

	for i, r := range []rune(vli.Content) {
		offset := vli.Offset + i

		style := lipgloss.NewStyle()
		if typ, ok := highlighter.TypeAt(spans, vli.LogicalStartCol+i); ok {
			style = m.highlighter.Style(typ)
		}
		if offset >= sel.Start && offset < sel.End {
			style = style.Background(m.theme.SelectionStyle.GetBackground())
		}

		ch := string(r)
		if r == '\t' {
			ch = " "
		}

		if showCursor && offset == head {
			sb.WriteString(m.theme.CursorStyle.Render(ch))
			continue
		}
		sb.WriteString(style.Render(ch))
	}

	if showCursor && head == vli.end() {
		sb.WriteString(m.theme.CursorStyle.Render(" "))
	}
}
