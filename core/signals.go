package core

type Signal any

// ChangeSignal is published after the buffer text changes.
type ChangeSignal struct {
	content string
	source  ChangeSource
}

func (c ChangeSignal) Value() (content string, source ChangeSource) {
	return c.content, c.source
}

// PreviewSignal carries freshly rendered preview markup.
type PreviewSignal struct {
	markup string
	safe   bool
}

func (p PreviewSignal) Value() (markup string, safe bool) {
	return p.markup, p.safe
}

// PopoverSignal reports the popover now open on the toolbar.
type PopoverSignal struct {
	popover PopoverKind
}

func (p PopoverSignal) Value() PopoverKind {
	return p.popover
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	return m.id, m.value
}

type CopySignal struct {
	content string
}

func (c CopySignal) Value() string {
	return c.content
}

type PasteSignal struct {
	content string
}

func (p PasteSignal) Value() string {
	return p.content
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

func (s *Surface) dispatch(signal Signal) {
	select {
	case s.updateSignal <- signal:
	default:
		s.logger.Debug("signal channel is full, dropping signal")
	}
}
