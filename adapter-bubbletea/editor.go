package adapter_bubbletea

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ionut-t/previewedit/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/previewedit/core"
	"github.com/ionut-t/previewedit/internal/log"
	"github.com/ionut-t/previewedit/preview"
)

type Theme struct {
	ToolbarStyle           lipgloss.Style
	ToolbarEntryStyle      lipgloss.Style
	ToolbarActiveStyle     lipgloss.Style
	PopoverStyle           lipgloss.Style
	PopoverSelectedStyle   lipgloss.Style
	IdleStateStyle         lipgloss.Style
	PopoverStateStyle      lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	CursorStyle            lipgloss.Style
	PaneStyle              lipgloss.Style
	FocusedPaneStyle       lipgloss.Style
	PlaceholderStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	ToolbarStyle:           lipgloss.NewStyle().Background(lipgloss.Color("235")),
	ToolbarEntryStyle:      lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	ToolbarActiveStyle:     lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")).Padding(0, 1),
	PopoverStyle:           lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
	PopoverSelectedStyle:   lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	IdleStateStyle:         lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	PopoverStateStyle:      lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	CursorStyle:            lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0")),
	PaneStyle:              lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
	FocusedPaneStyle:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("62")),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

const messageDuration = 3 * time.Second

type focusArea int

const (
	focusEditor focusArea = iota
	focusPreview
)

type Model struct {
	surface *editor.Surface
	keys    KeyMap
	help    help.Model
	theme   Theme
	log     *zap.Logger

	viewport        viewport.Model // editor pane
	preview         viewport.Model // preview pane
	width           int
	height          int
	showLineNumbers bool
	showPreview     bool
	isFocused       bool
	focus           focusArea
	placeholder     string

	visualLayout    []VisualLineInfo
	cursorVisualRow int
	topLine         int
	lineNumWidth    int

	highlighter        *highlighter.Highlighter
	previewHighlighter *highlighter.Highlighter
	renderedMarkup     string
	renderedSafe       bool

	popover  popoverModel
	palette  []string
	sizes    []int
	snippets []string

	path  string
	saved string

	message        string
	err            error
	clearMsgCancel context.CancelFunc
}

// ChangeMsg reports a change of the buffer text.
type ChangeMsg struct {
	Content string
	Source  editor.ChangeSource
}

// PreviewMsg carries freshly rendered preview markup.
type PreviewMsg struct {
	Markup string
	Safe   bool
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

type SaveMsg struct {
	Path    string
	Content string
}

type CopyMsg struct {
	Content string
}

type PasteMsg struct {
	Content string
}

type messageMsg string

type popoverMsg struct {
	kind editor.PopoverKind
}

type clearMsg struct{}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

type config struct {
	surfaceOpts []editor.Option
	theme       Theme
	syntaxTheme string
	palette     []string
	sizes       []int
	snippets    []string
	path        string
	keys        KeyMap
}

type Option func(*config)

// WithSurfaceOptions forwards options to the underlying editing surface, after
// the adapter's own defaults.
func WithSurfaceOptions(opts ...editor.Option) Option {
	return func(c *config) {
		c.surfaceOpts = append(c.surfaceOpts, opts...)
	}
}

func WithClipboard(cb editor.Clipboard) Option {
	return WithSurfaceOptions(editor.WithClipboard(cb))
}

func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithSyntaxTheme selects the chroma style for both panes.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func WithSyntaxTheme(name string) Option {
	return func(c *config) {
		c.syntaxTheme = name
	}
}

// WithPalette sets the colors offered by the Font popover.
func WithPalette(colors []string) Option {
	return func(c *config) {
		c.palette = colors
	}
}

// WithSizes sets the font sizes offered by the Font popover.
func WithSizes(sizes []int) Option {
	return func(c *config) {
		c.sizes = sizes
	}
}

// WithSnippets sets the presets of the Tabs popover. A literal \n in a preset
// is expanded on insert.
func WithSnippets(snippets []string) Option {
	return func(c *config) {
		c.snippets = snippets
	}
}

// WithPath sets the path reported in SaveMsg.
func WithPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

func WithKeyMap(keys KeyMap) Option {
	return func(c *config) {
		c.keys = keys
	}
}

// New creates an editor of the given size holding content.
func New(content string, width, height int, opts ...Option) Model {
	cfg := config{
		theme:       DefaultTheme,
		syntaxTheme: "catppuccin-mocha",
		palette:     []string{"black", "red", "green", "blue", "orange", "purple"},
		sizes:       []int{12, 14, 16, 18, 24, 32},
		snippets:    []string{"\t"},
		keys:        DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := log.Get().Named("adapter.Model")

	surfaceOpts := append([]editor.Option{
		editor.WithPreviewRenderer(preview.New().RenderFunc()),
		editor.WithClipboard(&clipboardImpl{}),
		editor.WithLogger(logger.Named("surface")),
	}, cfg.surfaceOpts...)

	m := Model{
		surface:            editor.New(content, surfaceOpts...),
		keys:               cfg.keys,
		help:               help.New(),
		theme:              cfg.theme,
		log:                logger,
		viewport:           viewport.New(width, height),
		preview:            viewport.New(width, height),
		showLineNumbers:    true,
		showPreview:        true,
		highlighter:        highlighter.New("markdown", cfg.syntaxTheme),
		previewHighlighter: highlighter.New("html", cfg.syntaxTheme),
		popover:            newPopoverModel(),
		palette:            cfg.palette,
		sizes:              cfg.sizes,
		snippets:           cfg.snippets,
		path:               cfg.path,
		saved:              content,
	}

	m.SetSize(width, height)
	return m
}

// SetSize lays out the toolbar, both panes and the two bottom lines.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.layoutPanes()
	m.refresh()
}

func (m *Model) layoutPanes() {
	width, height := m.width, m.height

	bodyHeight := max(1, height-m.chromeHeight())

	editorWidth := width
	if m.showPreview {
		editorWidth = width / 2
		m.preview.Width = max(1, width-editorWidth-2)
		m.preview.Height = max(1, bodyHeight-2)
	}
	m.viewport.Width = max(1, editorWidth-2)
	m.viewport.Height = max(1, bodyHeight-2)
}

// chromeHeight counts the rows not used by the panes.
func (m *Model) chromeHeight() int {
	rows := 3 // toolbar, status line, command line
	if m.surface.ActivePopover() != editor.PopoverNone {
		rows += popoverHeight
	}
	return rows
}

// SetContent replaces the buffer, for changes that do not come from the user.
func (m *Model) SetContent(content string) {
	m.surface.SetContent(content)
	m.saved = content
	m.refresh()
}

// GetCurrentContent returns the buffer text.
func (m *Model) GetCurrentContent() string {
	return m.surface.GetContent()
}

// HasChanges reports whether the buffer differs from the last saved content.
func (m *Model) HasChanges() bool {
	return m.surface.GetContent() != m.saved
}

// MarkSaved records content as written to disk.
func (m *Model) MarkSaved(content string) {
	m.saved = content
}

// GetSurface returns the underlying editing surface.
func (m *Model) GetSurface() *editor.Surface {
	return m.surface
}

// SetSafe toggles raw HTML in the preview.
func (m *Model) SetSafe(safe bool) {
	m.surface.SetSafe(safe)
	m.refreshPreview()
}

func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.refresh()
}

// HidePreview gives the whole width to the editor pane.
func (m *Model) HidePreview(hide bool) {
	m.showPreview = !hide
	if hide {
		m.focus = focusEditor
	}
	m.SetSize(m.width, m.height)
}

func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) Focus() {
	m.isFocused = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

// PreviewFocused reports whether keys currently scroll the preview pane.
func (m *Model) PreviewFocused() bool {
	return m.focus == focusPreview
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.isFocused {
			break
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		if !m.isFocused {
			break
		}
		m.handleMouse(msg)

	case ChangeMsg, PreviewMsg, CopyMsg, PasteMsg, popoverMsg:
		cmds = append(cmds, m.listenForEditorUpdate())

	case messageMsg:
		cmds = append(cmds, m.DispatchMessage(string(msg), messageDuration), m.listenForEditorUpdate())

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration), m.listenForEditorUpdate())

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		content := m.surface.GetContent()
		path := m.path
		return func() tea.Msg {
			return SaveMsg{Path: path, Content: content}
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.ToggleSafe):
		m.SetSafe(!m.surface.Safe())
		return nil

	case key.Matches(msg, m.keys.SwitchFocus):
		if m.showPreview && m.surface.ActivePopover() == editor.PopoverNone {
			if m.focus == focusEditor {
				m.focus = focusPreview
			} else {
				m.focus = focusEditor
			}
		}
		return nil
	}

	if name, ok := m.keys.entryFor(msg); ok {
		_ = m.surface.Click(name)
		m.syncPopover()
		return nil
	}

	if m.surface.ActivePopover() != editor.PopoverNone {
		return m.handlePopoverKey(msg)
	}

	if m.focus == focusPreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Copy):
		_ = m.surface.Copy()
		return nil
	case key.Matches(msg, m.keys.Paste):
		_ = m.surface.Paste()
		return nil
	}

	// Bracketed paste and IME input deliver several runes at once.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		next := editor.InsertText(m.surface.Buffer(), string(msg.Runes))
		m.surface.OnUserEdit(next.Text, next.Selection())
		return nil
	}

	err := m.surface.HandleKey(convertBubbleKey(msg))
	if err == nil || errors.Is(err, editor.ErrStartOfBuffer) || errors.Is(err, editor.ErrEndOfBuffer) {
		return nil
	}
	return func() tea.Msg {
		return ErrorMsg{ID: editor.ErrorIdOf(err), Error: err}
	}
}

// handleMouse maps clicks on the toolbar row to entries and any other click
// to a click outside the open popover.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if msg.Y == 0 {
		if name, ok := m.toolbarEntryAt(msg.X); ok {
			_ = m.surface.Click(name)
			m.syncPopover()
			return
		}
	}

	if m.surface.ActivePopover() != editor.PopoverNone && !m.insidePopover(msg.Y) {
		m.surface.ClickOutside()
		m.syncPopover()
	}
}

// refresh brings every derived view in line with the surface.
func (m *Model) refresh() {
	m.syncPopover()
	m.refreshPreview()
	m.calculateVisualLayout()
	m.updateVisualTopLine()
	m.renderVisibleSlice()
}

func (m Model) View() string {
	editorPane := m.paneStyle(focusEditor).Render(m.viewport.View())

	body := editorPane
	if m.showPreview {
		body = lipgloss.JoinHorizontal(lipgloss.Top, editorPane, m.paneStyle(focusPreview).Render(m.preview.View()))
	}

	rows := []string{m.renderToolbar()}
	if m.surface.ActivePopover() != editor.PopoverNone {
		rows = append(rows, m.renderPopover())
	}
	rows = append(rows, body, m.getStatusLine(), m.getCommandLine())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) paneStyle(area focusArea) lipgloss.Style {
	if m.isFocused && m.focus == area && m.surface.ActivePopover() == editor.PopoverNone {
		return m.theme.FocusedPaneStyle
	}
	return m.theme.PaneStyle
}

func (m *Model) getStatusLine() string {
	var statusLine string
	if entry := m.activeEntry(); entry != "" {
		statusLine = m.theme.PopoverStateStyle.Render(" " + strings.ToUpper(entry) + " ")
	} else {
		statusLine = m.theme.IdleStateStyle.Render(" EDIT ")
	}

	info := " unsafe"
	if m.surface.Safe() {
		info = " safe"
	}
	if m.HasChanges() {
		info += " [+]"
	}

	sel := m.surface.Selection()
	row, col := m.cursorPosition()
	position := lipgloss.NewStyle().Render(formatPosition(row, col, sel.Len()))

	width := m.width - (lipgloss.Width(statusLine) + lipgloss.Width(info) + lipgloss.Width(position))
	gap := strings.Repeat(" ", max(0, width))

	return statusLine + m.theme.StatusLineStyle.Render(info+gap+position)
}

func (m *Model) getCommandLine() string {
	var commandLine string
	switch {
	case m.err != nil:
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	case m.message != "":
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	default:
		commandLine = m.help.View(m.keys)
	}

	paddingWidth := m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}
	return commandLine
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	ch := m.surface.GetUpdateSignalChan()
	return func() tea.Msg {
		signal := <-ch

		switch signal := signal.(type) {
		case editor.ChangeSignal:
			content, source := signal.Value()
			return ChangeMsg{Content: content, Source: source}

		case editor.PreviewSignal:
			markup, safe := signal.Value()
			return PreviewMsg{Markup: markup, Safe: safe}

		case editor.PopoverSignal:
			return popoverMsg{kind: signal.Value()}

		case editor.MessageSignal:
			_, message := signal.Value()
			return messageMsg(message)

		case editor.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Error: err}

		case editor.CopySignal:
			return CopyMsg{Content: signal.Value()}

		case editor.PasteSignal:
			return PasteMsg{Content: signal.Value()}
		}

		return messageMsg("")
	}
}

// Convert Bubbletea key to editor.KeyEvent
func convertBubbleKey(msg tea.KeyMsg) editor.KeyEvent {
	ev := editor.KeyEvent{}

	if len(msg.Runes) > 0 {
		ev.Rune = msg.Runes[0]
	}

	if msg.Alt {
		ev.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = editor.KeyEnter
	case tea.KeySpace:
		ev.Key = editor.KeySpace
		ev.Rune = ' '
	case tea.KeyEsc:
		ev.Key = editor.KeyEscape
	case tea.KeyBackspace:
		ev.Key = editor.KeyBackspace
	case tea.KeyTab:
		ev.Key = editor.KeyTab
		ev.Rune = '\t'
	case tea.KeyUp:
		ev.Key = editor.KeyUp
	case tea.KeyDown:
		ev.Key = editor.KeyDown
	case tea.KeyLeft:
		ev.Key = editor.KeyLeft
	case tea.KeyRight:
		ev.Key = editor.KeyRight
	case tea.KeyHome:
		ev.Key = editor.KeyHome
	case tea.KeyEnd:
		ev.Key = editor.KeyEnd
	case tea.KeyDelete:
		ev.Key = editor.KeyDelete
	case tea.KeyShiftUp:
		ev.Key = editor.KeyUp
		ev.Modifiers |= editor.ModShift
	case tea.KeyShiftDown:
		ev.Key = editor.KeyDown
		ev.Modifiers |= editor.ModShift
	case tea.KeyShiftLeft:
		ev.Key = editor.KeyLeft
		ev.Modifiers |= editor.ModShift
	case tea.KeyShiftRight:
		ev.Key = editor.KeyRight
		ev.Modifiers |= editor.ModShift
	case tea.KeyShiftHome:
		ev.Key = editor.KeyHome
		ev.Modifiers |= editor.ModShift
	case tea.KeyShiftEnd:
		ev.Key = editor.KeyEnd
		ev.Modifiers |= editor.ModShift
	case tea.KeyCtrlLeft:
		ev.Key = editor.KeyLeft
		ev.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlRight:
		ev.Key = editor.KeyRight
		ev.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlShiftLeft:
		ev.Key = editor.KeyLeft
		ev.Modifiers |= editor.ModCtrl | editor.ModShift
	case tea.KeyCtrlShiftRight:
		ev.Key = editor.KeyRight
		ev.Modifiers |= editor.ModCtrl | editor.ModShift
	default:
		if msg.Type != tea.KeyRunes {
			// Remaining control keys must not be typed as text.
			ev.Modifiers |= editor.ModCtrl
		}
	}

	return ev
}
