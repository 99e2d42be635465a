package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Font sizes accepted by the color popover, in pixels.
const (
	MinFontSize = 8
	MaxFontSize = 72
)

// DefaultStamps is the stamp vocabulary offered when none is configured.
var DefaultStamps = []string{
	"good", "bad", "tick", "cross", "star", "question", "flower", "heart",
}

// PopoverKind names the popover currently open on a toolbar.
// At most one popover is open at a time.
type PopoverKind int

const (
	PopoverNone PopoverKind = iota
	PopoverColor
	PopoverSnippet
	PopoverStamp
)

func (p PopoverKind) String() string {
	switch p {
	case PopoverColor:
		return "color"
	case PopoverSnippet:
		return "snippet"
	case PopoverStamp:
		return "stamp"
	default:
		return "none"
	}
}

// ToolbarEntry binds a name and its affordance either to a command or to a popover.
type ToolbarEntry struct {
	Name       string
	Affordance string
	Popover    PopoverKind
	Command    Command
}

// TriggersPopover reports whether clicking the entry opens a popover.
func (e ToolbarEntry) TriggersPopover() bool {
	return e.Popover != PopoverNone
}

// DefaultEntries returns the toolbar catalog in display order.
func DefaultEntries() []ToolbarEntry {
	return []ToolbarEntry{
		{Name: "H1", Affordance: "H₁", Command: SetHeadingLevel{Level: 1}},
		{Name: "H2", Affordance: "H₂", Command: SetHeadingLevel{Level: 2}},
		{Name: "H3", Affordance: "H₃", Command: SetHeadingLevel{Level: 3}},
		{Name: "Bold", Affordance: "B", Command: SymmetricWrap("**")},
		{Name: "Italic", Affordance: "I", Command: SymmetricWrap("*")},
		{Name: "Font", Affordance: "A", Popover: PopoverColor},
		{Name: "Tabs", Affordance: "⇥", Popover: PopoverSnippet},
		{Name: "Stamps", Affordance: "☺", Popover: PopoverStamp},
	}
}

// ColorSize is the payload of the color/size popover.
type ColorSize struct {
	Color string
	Size  int
}

// Validate checks the color is a hex color or a plain color name and the size is in range.
func (c ColorSize) Validate() error {
	if !isCSSColor(c.Color) {
		return errors.Wrapf(ErrInvalidColor, "%q", c.Color)
	}
	if c.Size < MinFontSize || c.Size > MaxFontSize {
		return errors.Wrapf(ErrInvalidFontSize, "%d not in [%d, %d]", c.Size, MinFontSize, MaxFontSize)
	}
	return nil
}

// Command builds the styled wrap for the payload.
func (c ColorSize) Command() Command {
	return WrapSelection{
		Prefix: fmt.Sprintf("<span style=\"color:%s;font-size:%dpx\">\n\n", c.Color, c.Size),
		Suffix: "\n\n</span>",
	}
}

func isCSSColor(s string) bool {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}

	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// StampCommand pads the delimited token with single spaces.
func StampCommand(token string) Command {
	return InsertAtCursor{Snippet: " :" + token + ": "}
}

// ExpandSnippet turns the two-character sequence `\n` into a newline.
func ExpandSnippet(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// Toolbar holds the ordered catalog and the single active popover.
type Toolbar struct {
	entries []ToolbarEntry
	stamps  []string
	active  PopoverKind
}

// NewToolbar creates a toolbar over entries. A nil stamps slice selects DefaultStamps.
func NewToolbar(entries []ToolbarEntry, stamps []string) *Toolbar {
	if len(stamps) == 0 {
		stamps = DefaultStamps
	}
	return &Toolbar{
		entries: entries,
		stamps:  slices.Clone(stamps),
	}
}

// Entries returns a copy of the catalog.
func (t *Toolbar) Entries() []ToolbarEntry {
	return slices.Clone(t.entries)
}

// Stamps returns the stamp vocabulary.
func (t *Toolbar) Stamps() []string {
	return slices.Clone(t.stamps)
}

// Entry looks up an entry by name.
func (t *Toolbar) Entry(name string) (ToolbarEntry, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e, true
		}
	}
	return ToolbarEntry{}, false
}

// Active returns the open popover, if any.
func (t *Toolbar) Active() PopoverKind {
	return t.active
}

// Click resolves a toolbar click. Command entries return their command and
// close any open popover; popover entries toggle their popover and return nil.
func (t *Toolbar) Click(name string) (Command, error) {
	entry, ok := t.Entry(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntry, "%q", name)
	}

	if !entry.TriggersPopover() {
		t.active = PopoverNone
		return entry.Command, nil
	}

	if t.active == entry.Popover {
		t.active = PopoverNone
	} else {
		t.active = entry.Popover
	}
	return nil, nil
}

// Close dismisses the open popover without issuing a command.
func (t *Toolbar) Close() {
	t.active = PopoverNone
}

func (t *Toolbar) expect(kind PopoverKind) error {
	if t.active != kind {
		return errors.Wrapf(ErrPopoverNotOpen, "%s (open: %s)", kind, t.active)
	}
	return nil
}

// SubmitColor validates the payload, closes the color popover and returns its command.
func (t *Toolbar) SubmitColor(payload ColorSize) (Command, error) {
	if err := t.expect(PopoverColor); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	t.active = PopoverNone
	return payload.Command(), nil
}

// SubmitSnippet closes the snippet popover and returns the insert command.
func (t *Toolbar) SubmitSnippet(snippet string) (Command, error) {
	if err := t.expect(PopoverSnippet); err != nil {
		return nil, err
	}
	t.active = PopoverNone
	return InsertAtCursor{Snippet: snippet}, nil
}

// SubmitStamp checks the token against the vocabulary, closes the stamp
// popover and returns the insert command.
func (t *Toolbar) SubmitStamp(token string) (Command, error) {
	if err := t.expect(PopoverStamp); err != nil {
		return nil, err
	}
	if !slices.Contains(t.stamps, token) {
		return nil, errors.Wrapf(ErrUnknownStamp, "%q", token)
	}
	t.active = PopoverNone
	return StampCommand(token), nil
}
