package core

var (
	CopiedMessage    = "selection copied"
	PastedMessage    = "clipboard pasted"
	NothingToCopy    = "nothing selected"
	StampMessage     = "stamp inserted"
	StyledMessage    = "selection styled"
	SnippetMessage   = "snippet inserted"
	PopoverClosedMsg = "popover closed"
)

// DispatchMessage publishes a MessageSignal. The id doubles as the text
// unless a value is given.
func (s *Surface) DispatchMessage(id string, value ...string) {
	text := id
	if len(value) > 0 {
		text = value[0]
	}
	s.dispatch(MessageSignal{id, text})
}
