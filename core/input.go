package core

// HandleKey applies a raw keystroke. Printable keys, Enter, Tab, Backspace and
// Delete become user edits; movement keys change the selection only, extending
// it from the anchor while Shift is held. Escape behaves like a click outside
// an open popover.
func (s *Surface) HandleKey(key KeyEvent) error {
	b := s.buffer

	switch key.Key {
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd:
		return s.moveCaret(key)

	case KeyEscape:
		s.ClickOutside()
		return nil

	case KeyBackspace:
		if b.Selection().IsEmpty() {
			if b.Start == 0 {
				return ErrStartOfBuffer
			}
			b = b.WithSelection(Selection{Start: prevBoundary(b.Text, b.Start), End: b.Start})
		}
		s.edit(InsertText(b, ""))
		return nil

	case KeyDelete:
		if b.Selection().IsEmpty() {
			next := nextBoundary(b.Text, b.End)
			if next == b.End {
				return ErrEndOfBuffer
			}
			b = b.WithSelection(Selection{Start: b.Start, End: next})
		}
		s.edit(InsertText(b, ""))
		return nil

	case KeyEnter:
		s.edit(InsertText(b, "\n"))
		return nil

	case KeyTab:
		s.edit(InsertText(b, "\t"))
		return nil

	case KeySpace:
		s.edit(InsertText(b, " "))
		return nil
	}

	if key.Rune != 0 && !key.Has(ModCtrl) {
		s.edit(InsertText(b, string(key.Rune)))
	}
	return nil
}

func (s *Surface) edit(next Buffer) {
	s.OnUserEdit(next.Text, next.Selection())
}

func (s *Surface) moveCaret(key KeyEvent) error {
	text := s.buffer.Text
	extend := key.Has(ModShift)
	sel := s.buffer.Selection()

	// Without Shift, Left/Right first collapse a selection onto its edge.
	if !extend && !sel.IsEmpty() {
		switch key.Key {
		case KeyLeft:
			s.collapse(sel.Start)
			return nil
		case KeyRight:
			s.collapse(sel.End)
			return nil
		}
	}

	c := s.cursor
	var err error
	switch key.Key {
	case KeyLeft:
		if key.Has(ModAlt) || key.Has(ModCtrl) {
			err = c.MoveWordBackward(text)
		} else {
			err = c.MoveLeft(text)
		}
	case KeyRight:
		if key.Has(ModAlt) || key.Has(ModCtrl) {
			err = c.MoveWordForward(text)
		} else {
			err = c.MoveRight(text)
		}
	case KeyUp:
		err = c.MoveUp(text)
	case KeyDown:
		err = c.MoveDown(text)
	case KeyHome:
		c.MoveToLineStart(text)
	case KeyEnd:
		c.MoveToLineEnd(text)
	}
	if err != nil {
		return err
	}

	anchor := s.anchor
	if !extend {
		anchor = c.Offset
	}
	s.buffer.Start = min(anchor, c.Offset)
	s.buffer.End = max(anchor, c.Offset)
	s.anchor = anchor
	s.cursor = c
	return nil
}

func (s *Surface) collapse(offset int) {
	s.reset(s.buffer.WithSelection(Caret(offset)))
}

// Head returns the moving end of the selection, where the caret is drawn.
func (s *Surface) Head() int {
	return s.cursor.Offset
}
