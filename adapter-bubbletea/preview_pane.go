package adapter_bubbletea

import (
	"strings"

	"go.uber.org/zap"
)

// refreshPreview copies the surface's latest markup into the preview pane,
// highlighted as HTML. The surface keeps the previous markup when rendering
// fails, so the pane never goes blank on an error.
func (m *Model) refreshPreview() {
	markup, safe := m.surface.Preview(), m.surface.Safe()
	if m.renderedMarkup == markup && m.renderedSafe == safe && m.preview.TotalLineCount() > 0 {
		return
	}

	m.renderedMarkup = markup
	m.renderedSafe = safe

	content := strings.TrimRight(markup, "\n")
	if m.previewHighlighter != nil {
		content = m.previewHighlighter.Render(content)
	}
	m.preview.SetContent(content)

	m.log.Debug("preview refreshed", zap.Int("bytes", len(markup)), zap.Bool("safe", safe))
}

// PreviewContent returns the markup currently shown in the preview pane.
func (m *Model) PreviewContent() string {
	return m.renderedMarkup
}
