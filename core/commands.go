package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxHeadingLevel is the deepest heading the engine will produce.
const MaxHeadingLevel = 6

// Command describes a buffer transform. Commands carry no buffer state.
type Command interface {
	Name() string
	Apply(b Buffer) Buffer
	isCommand()
}

// SetHeadingLevel replaces the heading marker of the line holding the selection start.
type SetHeadingLevel struct {
	Level int
}

func (c SetHeadingLevel) Name() string          { return fmt.Sprintf("heading-%d", c.Level) }
func (c SetHeadingLevel) Apply(b Buffer) Buffer { return ApplyHeadingLevel(b, c.Level) }
func (SetHeadingLevel) isCommand()              {}

// WrapSelection surrounds a non-empty selection with Prefix and Suffix.
// Both are used as given; an empty Suffix inserts nothing after the selection.
type WrapSelection struct {
	Prefix string
	Suffix string
}

// SymmetricWrap uses delim on both sides of the selection.
func SymmetricWrap(delim string) WrapSelection {
	return WrapSelection{Prefix: delim, Suffix: delim}
}

func (c WrapSelection) Name() string { return "wrap" }

func (c WrapSelection) Apply(b Buffer) Buffer {
	return Wrap(b, c.Prefix, c.Suffix)
}

func (WrapSelection) isCommand() {}

// InsertAtCursor replaces the selection, or inserts at the caret.
type InsertAtCursor struct {
	Snippet string
}

func (c InsertAtCursor) Name() string          { return "insert" }
func (c InsertAtCursor) Apply(b Buffer) Buffer { return InsertText(b, c.Snippet) }
func (InsertAtCursor) isCommand()              {}

// headingPrefixLen measures the run of '#' followed by the run of ' ' at the
// start of line. Both are ASCII, so bytes and runes agree.
func headingPrefixLen(line string) int {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

// ApplyHeadingLevel strips any leading "#* *" run from the line containing the
// selection start and prepends level '#' characters and a single space.
// Reapplying the same level is a no-op.
func ApplyHeadingLevel(b Buffer, level int) Buffer {
	b = b.Clamp()
	level = max(1, min(level, MaxHeadingLevel))

	startByte := byteOffset(b.Text, b.Start)
	lineByte := strings.LastIndexByte(b.Text[:startByte], '\n') + 1
	lineStart := utf8.RuneCountInString(b.Text[:lineByte])
	oldLen := headingPrefixLen(b.Text[lineByte:])
	prefix := strings.Repeat("#", level) + " "
	newLen := utf8.RuneCountInString(prefix)

	remap := func(offset int) int {
		switch {
		case offset < lineStart:
			return offset
		case offset < lineStart+oldLen:
			return lineStart + newLen
		default:
			return offset - oldLen + newLen
		}
	}

	return Buffer{
		Text:  b.Text[:lineByte] + prefix + b.Text[lineByte+oldLen:],
		Start: remap(b.Start),
		End:   remap(b.End),
	}
}

// Wrap inserts prefix before and suffix after the selection. An empty
// selection returns the buffer unchanged. The resulting selection still spans
// the originally selected text.
func Wrap(b Buffer, prefix, suffix string) Buffer {
	b = b.Clamp()
	if b.Start == b.End {
		return b
	}

	i := byteOffset(b.Text, b.Start)
	j := i + byteOffset(b.Text[i:], b.End-b.Start)

	var sb strings.Builder
	sb.WriteString(b.Text[:i])
	sb.WriteString(prefix)
	sb.WriteString(b.Text[i:j])
	sb.WriteString(suffix)
	sb.WriteString(b.Text[j:])

	shift := utf8.RuneCountInString(prefix)
	return Buffer{
		Text:  sb.String(),
		Start: b.Start + shift,
		End:   b.End + shift,
	}
}

// WrapSymmetric wraps the selection with the same delimiter on both sides.
func WrapSymmetric(b Buffer, delim string) Buffer {
	return Wrap(b, delim, delim)
}

// InsertText replaces the selection with snippet and leaves the caret after it.
// Unlike Wrap, selected text is discarded.
func InsertText(b Buffer, snippet string) Buffer {
	b = b.Clamp()
	caret := b.Start + utf8.RuneCountInString(snippet)
	return Buffer{
		Text:  splice(b.Text, b.Start, b.End, snippet),
		Start: caret,
		End:   caret,
	}
}
