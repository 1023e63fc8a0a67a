/*
Package keyboard describes key events as delivered by an input layer.

An event carries the physical key identity, either as a semantic key name
or as a legacy key code, a set of modifiers, an opaque target reference and
the means to suppress the key's default effect (text insertion).
Normalizing the event models of different platforms is the input layer's
job; this package only knows the handful of keys an editing engine needs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package keyboard

import (
	"strings"
	"unicode/utf8"
)

// Semantic key names.
const (
	Backspace  = "Backspace"
	Tab        = "Tab"
	Enter      = "Enter"
	Escape     = "Escape"
	Space      = "Space"
	ArrowLeft  = "ArrowLeft"
	ArrowUp    = "ArrowUp"
	ArrowRight = "ArrowRight"
	ArrowDown  = "ArrowDown"
	Delete     = "Delete"
)

var keyCodes = map[int]string{
	8:  Backspace,
	9:  Tab,
	13: Enter,
	27: Escape,
	32: Space,
	37: ArrowLeft,
	38: ArrowUp,
	39: ArrowRight,
	40: ArrowDown,
	46: Delete,
}

// Modifier is a set of modifier keys held down during a key event.
type Modifier uint8

// Modifier keys
const (
	Shift Modifier = 1 << iota
	Ctrl
	Alt
	Meta
)

// Has is true if all modifiers of m are set.
func (mods Modifier) Has(m Modifier) bool {
	return mods&m == m
}

func (mods Modifier) String() string {
	var names []string
	for _, m := range []struct {
		mod  Modifier
		name string
	}{{Shift, "Shift"}, {Ctrl, "Ctrl"}, {Alt, "Alt"}, {Meta, "Meta"}} {
		if mods.Has(m.mod) {
			names = append(names, m.name)
		}
	}
	return strings.Join(names, "+")
}

// Event is a key event.
type Event struct {
	Key       string      // semantic key name, if known to the input layer
	Code      int         // legacy key code
	Char      rune        // character the key produces by default, 0 if none
	Modifiers Modifier    // modifier keys held down
	Target    interface{} // opaque reference to the event target

	prevented bool
}

// Name resolves the key identity to a semantic name. If the event does not
// carry a name, the key code is looked up. Unknown keys yield "".
func (ev *Event) Name() string {
	if ev.Key != "" {
		return ev.Key
	}
	return keyCodes[ev.Code]
}

// PreventDefault suppresses the key's default effect.
func (ev *Event) PreventDefault() {
	ev.prevented = true
}

// DefaultPrevented is true if PreventDefault has been called.
func (ev *Event) DefaultPrevented() bool {
	return ev.prevented
}

// ForRune creates the event for typing character r.
func ForRune(r rune) *Event {
	ev := &Event{Char: r}
	switch r {
	case ' ':
		ev.Code = 32
	case '\n', '\r':
		ev.Code, ev.Char = 13, '\n'
	case '\t':
		ev.Code = 9
	default:
		ev.Key = string(r)
	}
	return ev
}

// ForName creates the event for a named key. Single characters are treated
// as if typed.
func ForName(name string) *Event {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return ForRune(r)
	}
	ev := &Event{Key: name}
	for code, n := range keyCodes {
		if strings.EqualFold(n, name) {
			ev.Key, ev.Code = n, code
		}
	}
	if ev.Key == Space {
		ev.Char = ' '
	}
	return ev
}
