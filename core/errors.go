package core

import (
	"github.com/pkg/errors"
)

var (
	ErrStartOfBuffer   = errors.New("start of buffer")
	ErrEndOfBuffer     = errors.New("end of buffer")
	ErrUnknownEntry    = errors.New("unknown toolbar entry")
	ErrPopoverNotOpen  = errors.New("popover is not open")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidFontSize = errors.New("invalid font size")
	ErrUnknownStamp    = errors.New("unknown stamp")
	ErrClipboard       = errors.New("clipboard unavailable")
	ErrPreview         = errors.New("preview render failed")
)

type ErrorId int

const (
	ErrUnknownEntryId ErrorId = iota
	ErrPopoverNotOpenId
	ErrInvalidColorId
	ErrInvalidFontSizeId
	ErrUnknownStampId
	ErrClipboardId
	ErrPreviewId
	ErrUnknownId
)

// Error pairs an error with its classification.
type Error struct {
	id  ErrorId
	err error
}

func newError(id ErrorId, err error) *Error {
	return &Error{id: id, err: err}
}

func (e *Error) ID() ErrorId {
	return e.id
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// ErrorIdOf classifies err by the sentinel it wraps.
func ErrorIdOf(err error) ErrorId {
	var e *Error
	if errors.As(err, &e) {
		return e.id
	}

	switch errors.Cause(err) {
	case ErrUnknownEntry:
		return ErrUnknownEntryId
	case ErrPopoverNotOpen:
		return ErrPopoverNotOpenId
	case ErrInvalidColor:
		return ErrInvalidColorId
	case ErrInvalidFontSize:
		return ErrInvalidFontSizeId
	case ErrUnknownStamp:
		return ErrUnknownStampId
	case ErrClipboard:
		return ErrClipboardId
	case ErrPreview:
		return ErrPreviewId
	}
	return ErrUnknownId
}

func (s *Surface) DispatchError(id ErrorId, err error) {
	s.dispatch(ErrorSignal{id: id, err: err})
}
