// Package input holds the keyboard state read by the platform controls.
package input

import "strings"

// Key is one of the control keys consulted by the demo.
type Key uint8

const (
	KeyW Key = iota // forward
	KeyS            // back
	KeyA            // strafe left
	KeyD            // strafe right
	KeyQ            // rotate left
	KeyE            // rotate right
	numKeys
)

var keyRunes = [numKeys]rune{'W', 'S', 'A', 'D', 'Q', 'E'}

// String returns the key letter.
func (k Key) String() string {
	if k < numKeys {
		return string(keyRunes[k])
	}
	return "?"
}

// KeyFromRune maps a letter (either case) to a Key.
func KeyFromRune(r rune) (Key, bool) {
	switch r {
	case 'w', 'W':
		return KeyW, true
	case 's', 'S':
		return KeyS, true
	case 'a', 'A':
		return KeyA, true
	case 'd', 'D':
		return KeyD, true
	case 'q', 'Q':
		return KeyQ, true
	case 'e', 'E':
		return KeyE, true
	}
	return 0, false
}

// Keys reports which control keys are held this frame.
type Keys interface {
	Pressed(k Key) bool
}

// KeyState is a bitset of held keys. The zero value has nothing pressed.
type KeyState uint8

// Of returns a KeyState with the given keys held.
func Of(keys ...Key) KeyState {
	var s KeyState
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// Pressed reports whether k is held.
func (s KeyState) Pressed(k Key) bool {
	return s&(1<<k) != 0
}

// With returns s with k held.
func (s KeyState) With(k Key) KeyState {
	return s | 1<<k
}

// Without returns s with k released.
func (s KeyState) Without(k Key) KeyState {
	return s &^ (1 << k)
}

// String lists the held keys, e.g. "WD". Empty state is "-".
func (s KeyState) String() string {
	if s == 0 {
		return "-"
	}
	var b strings.Builder
	for k := Key(0); k < numKeys; k++ {
		if s.Pressed(k) {
			b.WriteRune(keyRunes[k])
		}
	}
	return b.String()
}
