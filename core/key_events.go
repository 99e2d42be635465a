package core

import (
	"fmt"
	"strings"
)

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[KeyCode]string{
	KeyUnknown:   "Unknown",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is a keystroke delivered by the hosting input surface.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

func (k KeyEvent) Has(mod KeyModifiers) bool {
	return k.Modifiers&mod != 0
}

func (k KeyEvent) String() string {
	var parts []string

	if k.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if k.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if k.Has(ModShift) {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else if name, ok := keyNames[k.Key]; ok {
		parts = append(parts, name)
	} else {
		parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
	}

	return strings.Join(parts, "+")
}
