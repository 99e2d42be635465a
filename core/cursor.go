package core

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Cursor is a caret offset in runes plus the sticky column used by vertical movement.
type Cursor struct {
	Offset    int
	Preferred int
}

// graphemeBoundaries returns the rune offsets at which grapheme clusters start,
// followed by the total rune count.
func graphemeBoundaries(text string) []int {
	bounds := []int{0}
	offset := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		offset += len(g.Runes())
		bounds = append(bounds, offset)
	}
	return bounds
}

func prevBoundary(text string, offset int) int {
	prev := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(text string, offset int) int {
	bounds := graphemeBoundaries(text)
	for _, b := range bounds {
		if b > offset {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// lineStartBefore returns the offset following the last newline strictly
// before offset, or 0.
func lineStartBefore(runes []rune, offset int) int {
	for i := offset - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineBounds returns the offsets of the first rune of the line holding offset
// and of the newline (or end of text) terminating it.
func lineBounds(runes []rune, offset int) (start, end int) {
	start = lineStartBefore(runes, offset)
	end = offset
	for end < len(runes) && runes[end] != '\n' {
		end++
	}
	return start, end
}

// MoveLeft moves one grapheme cluster left, crossing line breaks.
func (c *Cursor) MoveLeft(text string) error {
	if c.Offset <= 0 {
		return ErrStartOfBuffer
	}
	c.Offset = prevBoundary(text, c.Offset)
	c.updatePreferred(text)
	return nil
}

// MoveRight moves one grapheme cluster right, crossing line breaks.
func (c *Cursor) MoveRight(text string) error {
	next := nextBoundary(text, c.Offset)
	if next == c.Offset {
		return ErrEndOfBuffer
	}
	c.Offset = next
	c.updatePreferred(text)
	return nil
}

// MoveUp moves to the previous line keeping the preferred column where possible.
func (c *Cursor) MoveUp(text string) error {
	runes := []rune(text)
	start, _ := lineBounds(runes, c.Offset)
	if start == 0 {
		return ErrStartOfBuffer
	}
	prevStart, prevEnd := lineBounds(runes, start-1)
	c.Offset = min(prevStart+c.Preferred, prevEnd)
	return nil
}

// MoveDown moves to the next line keeping the preferred column where possible.
func (c *Cursor) MoveDown(text string) error {
	runes := []rune(text)
	_, end := lineBounds(runes, c.Offset)
	if end >= len(runes) {
		return ErrEndOfBuffer
	}
	nextStart, nextEnd := lineBounds(runes, end+1)
	c.Offset = min(nextStart+c.Preferred, nextEnd)
	return nil
}

// MoveToLineStart moves the cursor to the start of the current line.
func (c *Cursor) MoveToLineStart(text string) {
	c.Offset, _ = lineBounds([]rune(text), c.Offset)
	c.Preferred = 0
}

// MoveToLineEnd moves the cursor after the last character of the current line.
func (c *Cursor) MoveToLineEnd(text string) {
	_, c.Offset = lineBounds([]rune(text), c.Offset)
	c.updatePreferred(text)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// MoveWordForward moves past the current word and any following non-word runes.
func (c *Cursor) MoveWordForward(text string) error {
	runes := []rune(text)
	if c.Offset >= len(runes) {
		return ErrEndOfBuffer
	}
	i := c.Offset
	for i < len(runes) && isWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && !isWordChar(runes[i]) {
		i++
	}
	c.Offset = i
	c.updatePreferred(text)
	return nil
}

// MoveWordBackward moves to the start of the previous word.
func (c *Cursor) MoveWordBackward(text string) error {
	runes := []rune(text)
	if c.Offset <= 0 {
		return ErrStartOfBuffer
	}
	i := min(c.Offset, len(runes))
	for i > 0 && !isWordChar(runes[i-1]) {
		i--
	}
	for i > 0 && isWordChar(runes[i-1]) {
		i--
	}
	c.Offset = i
	c.updatePreferred(text)
	return nil
}

func (c *Cursor) updatePreferred(text string) {
	start, _ := lineBounds([]rune(text), c.Offset)
	c.Preferred = c.Offset - start
}
