package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameResolution(t *testing.T) {
	assert.Equal(t, Space, (&Event{Code: 32}).Name())
	assert.Equal(t, Enter, (&Event{Code: 13}).Name())
	assert.Equal(t, "", (&Event{Code: 999}).Name())
	assert.Equal(t, Space, (&Event{Key: Space, Code: 65}).Name(), "key name wins over key code")
}

func TestForRune(t *testing.T) {
	ev := ForRune(' ')
	assert.Equal(t, Space, ev.Name())
	assert.Equal(t, ' ', ev.Char)
	ev = ForRune('#')
	assert.Equal(t, "#", ev.Name())
	assert.Equal(t, '#', ev.Char)
	assert.Equal(t, Enter, ForRune('\n').Name())
}

func TestForName(t *testing.T) {
	ev := ForName("space")
	assert.Equal(t, Space, ev.Name())
	assert.Equal(t, 32, ev.Code)
	assert.Equal(t, ' ', ev.Char)
	assert.Equal(t, ArrowLeft, ForName("arrowleft").Name())
	assert.Equal(t, "x", ForName("x").Name())
}

func TestModifiers(t *testing.T) {
	mods := Shift | Ctrl
	assert.True(t, mods.Has(Shift))
	assert.False(t, mods.Has(Alt))
	assert.Equal(t, "Shift+Ctrl", mods.String())
}

func TestPreventDefault(t *testing.T) {
	ev := ForRune(' ')
	assert.False(t, ev.DefaultPrevented())
	ev.PreventDefault()
	assert.True(t, ev.DefaultPrevented())
}
