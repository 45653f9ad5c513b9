// Package input provides rig.Controls implementations: live ebiten keyboard
// polling and a scripted timeline for headless runs.
package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flycam/rig"
)

// Bindings maps each action to a keyboard key.
type Bindings struct {
	Keys  [len(rig.Actions)]ebiten.Key
	Boost ebiten.Key
	// HasBoost is false when no boost key is bound.
	HasBoost bool
}

// DefaultBindings uses WASD for the horizontal plane, left shift and left
// control for up and down, and space for boost.
func DefaultBindings() Bindings {
	var b Bindings
	b.Keys[rig.Forward] = ebiten.KeyW
	b.Keys[rig.Backward] = ebiten.KeyS
	b.Keys[rig.Left] = ebiten.KeyA
	b.Keys[rig.Right] = ebiten.KeyD
	b.Keys[rig.Up] = ebiten.KeyShiftLeft
	b.Keys[rig.Down] = ebiten.KeyControlLeft
	b.Boost = ebiten.KeySpace
	b.HasBoost = true
	return b
}

// ParseKey resolves an ebiten key name such as "W", "ShiftLeft" or "Space".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown key %q: %w", name, err)
	}
	return k, nil
}

// KeyState reports whether a key is held. ebiten.IsKeyPressed satisfies it.
type KeyState func(ebiten.Key) bool

// Keyboard polls key state through its bindings.
type Keyboard struct {
	Bindings Bindings
	pressed  KeyState
}

// NewKeyboard returns a Keyboard polling ebiten's live key state.
func NewKeyboard(bindings Bindings) *Keyboard {
	return &Keyboard{Bindings: bindings, pressed: ebiten.IsKeyPressed}
}

// NewKeyboardWith returns a Keyboard polling an arbitrary key state source.
func NewKeyboardWith(bindings Bindings, pressed KeyState) *Keyboard {
	return &Keyboard{Bindings: bindings, pressed: pressed}
}

func (k *Keyboard) Held(a rig.Action) bool {
	if int(a) >= len(k.Bindings.Keys) {
		return false
	}
	return k.pressed(k.Bindings.Keys[a])
}

func (k *Keyboard) Boosting() bool {
	return k.Bindings.HasBoost && k.pressed(k.Bindings.Boost)
}
