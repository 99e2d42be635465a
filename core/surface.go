package core

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Surface owns a Buffer and mediates between raw input, the toolbar and the
// command engine. It is not safe for concurrent use.
type Surface struct {
	buffer Buffer
	anchor int
	cursor Cursor

	toolbar *Toolbar
	stamps  []string

	safe     bool
	render   RenderFunc
	preview  string
	onChange func(ChangeEvent)
	source   SelectionSource

	clipboard    Clipboard
	logger       *zap.Logger
	signalBuffer int
	updateSignal chan Signal
}

// New creates a surface holding content with the caret at the end of it.
func New(content string, opts ...Option) *Surface {
	s := &Surface{
		safe:         true,
		logger:       zap.NewNop(),
		signalBuffer: 100,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.toolbar = NewToolbar(DefaultEntries(), s.stamps)
	s.updateSignal = make(chan Signal, s.signalBuffer)

	s.reset(NewBuffer(content))
	s.renderPreview()

	return s
}

// GetContent returns the current buffer text.
func (s *Surface) GetContent() string {
	return s.buffer.Text
}

// SetContent forces the buffer text, for out-of-band changes of the owner's
// source value. The selection moves to the end of text and OnChange is not called.
func (s *Surface) SetContent(text string) {
	s.reset(NewBuffer(text))
	s.renderPreview()
}

// Buffer returns a copy of the current buffer.
func (s *Surface) Buffer() Buffer {
	return s.buffer
}

// Selection returns the tracked selection.
func (s *Surface) Selection() Selection {
	return s.buffer.Selection()
}

// SetSelection records a selection change reported by the input surface.
func (s *Surface) SetSelection(sel Selection) {
	s.reset(s.buffer.WithSelection(sel))
}

// OnUserEdit replaces the buffer with the result of a raw edit and notifies the owner.
func (s *Surface) OnUserEdit(text string, sel Selection) {
	s.reset(Buffer{Text: text}.WithSelection(sel))
	s.notify(SourceUserEdit, "")
}

// OnCommand applies cmd to the selection current at dispatch time. Commands
// that change neither text nor selection do not notify.
func (s *Surface) OnCommand(cmd Command) {
	current := s.buffer.WithSelection(s.liveSelection())
	next := cmd.Apply(current)
	if next.Equal(current) {
		s.reset(current)
		return
	}

	s.reset(next)
	s.notify(SourceCommand, cmd.Name())
}

func (s *Surface) liveSelection() Selection {
	if s.source != nil {
		return s.source.Selection()
	}
	return s.buffer.Selection()
}

func (s *Surface) reset(b Buffer) {
	s.buffer = b.Clamp()
	s.anchor = s.buffer.Start
	s.cursor = Cursor{Offset: s.buffer.End}
	s.cursor.updatePreferred(s.buffer.Text)
}

func (s *Surface) notify(source ChangeSource, command string) {
	event := ChangeEvent{
		Content:   s.buffer.Text,
		Selection: s.buffer.Selection(),
		Source:    source,
		Command:   command,
	}
	if s.onChange != nil {
		s.onChange(event)
	}
	s.dispatch(ChangeSignal{content: event.Content, source: source})
	s.renderPreview()
}

func (s *Surface) renderPreview() {
	if s.render == nil {
		return
	}

	markup, err := s.render(s.buffer.Text, s.safe)
	if err != nil {
		s.logger.Warn("preview render failed", zap.Error(err), zap.Bool("safe", s.safe))
		s.DispatchError(ErrPreviewId, errors.Wrapf(ErrPreview, "%v", err))
		return
	}

	s.preview = markup
	s.dispatch(PreviewSignal{markup: markup, safe: s.safe})
}

// Preview returns the last successfully rendered preview.
func (s *Surface) Preview() string {
	return s.preview
}

func (s *Surface) Safe() bool {
	return s.safe
}

// SetSafe changes the renderer flag and re-renders.
func (s *Surface) SetSafe(safe bool) {
	if s.safe == safe {
		return
	}
	s.safe = safe
	s.renderPreview()
}

func (s *Surface) Toolbar() *Toolbar {
	return s.toolbar
}

// ActivePopover returns the open popover.
func (s *Surface) ActivePopover() PopoverKind {
	return s.toolbar.Active()
}

// State reports idle or popover-active.
func (s *Surface) State() State {
	if s.toolbar.Active() != PopoverNone {
		return StatePopoverActive
	}
	return StateIdle
}

// Click handles a toolbar click by entry name.
func (s *Surface) Click(name string) error {
	before := s.toolbar.Active()
	cmd, err := s.toolbar.Click(name)
	if err != nil {
		s.DispatchError(ErrUnknownEntryId, err)
		return err
	}

	if after := s.toolbar.Active(); after != before {
		s.logger.Debug("popover changed", zap.Stringer("from", before), zap.Stringer("to", after))
		s.dispatch(PopoverSignal{popover: after})
	}
	if cmd != nil {
		s.OnCommand(cmd)
	}
	return nil
}

// ClickOutside closes the open popover, discarding whatever it collected.
func (s *Surface) ClickOutside() {
	if s.toolbar.Active() == PopoverNone {
		return
	}
	s.toolbar.Close()
	s.dispatch(PopoverSignal{popover: PopoverNone})
	s.DispatchMessage(PopoverClosedMsg)
}

func (s *Surface) submit(cmd Command, err error, message string) error {
	if err != nil {
		s.DispatchError(ErrorIdOf(err), err)
		return err
	}
	s.dispatch(PopoverSignal{popover: PopoverNone})
	s.OnCommand(cmd)
	s.DispatchMessage(message)
	return nil
}

// SubmitColor wraps the selection in a styled span built from payload.
func (s *Surface) SubmitColor(payload ColorSize) error {
	cmd, err := s.toolbar.SubmitColor(payload)
	return s.submit(cmd, err, StyledMessage)
}

// SubmitSnippet inserts snippet at the caret, replacing any selection.
func (s *Surface) SubmitSnippet(snippet string) error {
	cmd, err := s.toolbar.SubmitSnippet(snippet)
	return s.submit(cmd, err, SnippetMessage)
}

// SubmitStamp inserts the delimited stamp token at the caret.
func (s *Surface) SubmitStamp(token string) error {
	cmd, err := s.toolbar.SubmitStamp(token)
	return s.submit(cmd, err, StampMessage)
}

// Copy writes the selected text to the clipboard.
func (s *Surface) Copy() error {
	if s.clipboard == nil {
		return errors.Wrap(ErrClipboard, "clipboard handler not set")
	}

	b := s.buffer.WithSelection(s.liveSelection())
	if b.Selection().IsEmpty() {
		s.DispatchMessage(NothingToCopy)
		return nil
	}

	content := b.Selected()
	if err := s.clipboard.Write(content); err != nil {
		err = errors.Wrapf(ErrClipboard, "write: %v", err)
		s.DispatchError(ErrClipboardId, err)
		return err
	}

	s.dispatch(CopySignal{content: content})
	s.DispatchMessage(CopiedMessage)
	return nil
}

// Paste inserts the clipboard content at the caret.
func (s *Surface) Paste() error {
	if s.clipboard == nil {
		return errors.Wrap(ErrClipboard, "clipboard handler not set")
	}

	content, err := s.clipboard.Read()
	if err != nil {
		err = errors.Wrapf(ErrClipboard, "read: %v", err)
		s.DispatchError(ErrClipboardId, err)
		return err
	}

	s.OnCommand(InsertAtCursor{Snippet: content})
	s.dispatch(PasteSignal{content: content})
	s.DispatchMessage(PastedMessage)
	return nil
}

// GetUpdateSignalChan exposes signals for UI consumers.
func (s *Surface) GetUpdateSignalChan() <-chan Signal {
	return s.updateSignal
}
