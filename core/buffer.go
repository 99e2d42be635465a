package core

import "unicode/utf8"

// Selection is a range of rune offsets over the buffer text.
// Start == End denotes a caret with no selected text.
type Selection struct {
	Start int
	End   int
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// IsEmpty reports whether the selection is a plain caret.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of selected runes.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Buffer represents the text being authored together with the most recently
// known selection over it. Offsets count runes, not bytes.
type Buffer struct {
	Text  string
	Start int
	End   int
}

// NewBuffer creates a buffer with the caret placed at the end of text.
func NewBuffer(text string) Buffer {
	n := utf8.RuneCountInString(text)
	return Buffer{Text: text, Start: n, End: n}
}

// WithSelection returns a copy of the buffer with sel applied and clamped.
func (b Buffer) WithSelection(sel Selection) Buffer {
	b.Start, b.End = sel.Start, sel.End
	return b.Clamp()
}

// Selection returns the current selection range.
func (b Buffer) Selection() Selection {
	return Selection{Start: b.Start, End: b.End}
}

// Len returns the rune count of the text.
func (b Buffer) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// IsEmpty checks if the buffer holds no text.
func (b Buffer) IsEmpty() bool {
	return b.Text == ""
}

// Selected returns the selected substring, byte for byte.
func (b Buffer) Selected() string {
	b = b.Clamp()
	i := byteOffset(b.Text, b.Start)
	j := i + byteOffset(b.Text[i:], b.End-b.Start)
	return b.Text[i:j]
}

// Clamp returns a well-formed copy of the buffer: both offsets are clamped to
// [0, Len()] and swapped when they arrive reversed.
func (b Buffer) Clamp() Buffer {
	n := b.Len()
	b.Start = clampOffset(b.Start, n)
	b.End = clampOffset(b.End, n)
	if b.Start > b.End {
		b.Start, b.End = b.End, b.Start
	}
	return b
}

// Equal reports whether both text and selection match.
func (b Buffer) Equal(other Buffer) bool {
	return b.Text == other.Text && b.Start == other.Start && b.End == other.End
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// byteOffset converts a rune offset into a byte index of text. An invalid
// byte counts as one rune, as in utf8.RuneCountInString.
func byteOffset(text string, offset int) int {
	i := 0
	for n := 0; n < offset && i < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return i
}

// splice replaces the runes in [start, end) with insert. Every other byte of
// text is kept as is, including invalid UTF-8.
func splice(text string, start, end int, insert string) string {
	i := byteOffset(text, start)
	j := i + byteOffset(text[i:], end-start)
	return text[:i] + insert + text[j:]
}
