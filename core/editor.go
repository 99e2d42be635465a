package core

import "go.uber.org/zap"

// State is the toolbar interaction state of a Surface.
type State int

const (
	StateIdle          State = iota // No popover open
	StatePopoverActive              // Exactly one popover open
)

func (s State) String() string {
	if s == StatePopoverActive {
		return "popover-active"
	}
	return "idle"
}

// ChangeSource tells the owner what produced a change notification.
type ChangeSource int

const (
	SourceUserEdit ChangeSource = iota
	SourceCommand
)

func (s ChangeSource) String() string {
	if s == SourceCommand {
		return "command"
	}
	return "edit"
}

// ChangeEvent is delivered to the owner's OnChange callback.
type ChangeEvent struct {
	Content   string
	Selection Selection
	Source    ChangeSource
	Command   string // Command name when Source is SourceCommand
}

// SelectionSource reports the selection of the live input surface.
// It is consulted when a command is dispatched, never cached.
type SelectionSource interface {
	Selection() Selection
}

// SelectionFunc adapts a function to SelectionSource.
type SelectionFunc func() Selection

func (f SelectionFunc) Selection() Selection { return f() }

// RenderFunc turns buffer text into preview markup. When safe is set the
// output must not contain raw HTML from the source.
type RenderFunc func(content string, safe bool) (string, error)

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

type Option func(*Surface)

// WithSafe sets the flag passed through to the preview renderer. Default true.
func WithSafe(safe bool) Option {
	return func(s *Surface) { s.safe = safe }
}

func WithOnChange(fn func(ChangeEvent)) Option {
	return func(s *Surface) { s.onChange = fn }
}

func WithPreviewRenderer(render RenderFunc) Option {
	return func(s *Surface) { s.render = render }
}

// WithSelectionSource reads command selections from src instead of the
// surface's own tracked selection.
func WithSelectionSource(src SelectionSource) Option {
	return func(s *Surface) { s.source = src }
}

func WithClipboard(clipboard Clipboard) Option {
	return func(s *Surface) { s.clipboard = clipboard }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Surface) { s.logger = logger }
}

// WithStamps replaces the stamp vocabulary of the toolbar.
func WithStamps(stamps []string) Option {
	return func(s *Surface) { s.stamps = stamps }
}

// WithSignalBuffer sets the capacity of the signal channel. Default 100.
func WithSignalBuffer(size int) Option {
	return func(s *Surface) { s.signalBuffer = size }
}
