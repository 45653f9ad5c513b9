package input_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardBindings(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyShiftLeft: true}
	kb := input.NewKeyboardWith(input.DefaultBindings(), func(k ebiten.Key) bool { return down[k] })

	assert.True(t, kb.Held(rig.Forward))
	assert.True(t, kb.Held(rig.Up))
	assert.False(t, kb.Held(rig.Backward))
	assert.False(t, kb.Held(rig.Down))
	assert.False(t, kb.Held(rig.Action(42)))
	assert.False(t, kb.Boosting())

	down[ebiten.KeySpace] = true
	assert.True(t, kb.Boosting())

	kb.Bindings.HasBoost = false
	assert.False(t, kb.Boosting())

	assert.Equal(t, rig.SampleIntent(rig.HeldSet{rig.Forward: true, rig.Up: true}), rig.SampleIntent(kb))
}

func TestParseKey(t *testing.T) {
	for name, want := range map[string]ebiten.Key{
		"W":           ebiten.KeyW,
		"ShiftLeft":   ebiten.KeyShiftLeft,
		"ControlLeft": ebiten.KeyControlLeft,
		"Space":       ebiten.KeySpace,
		"ArrowUp":     ebiten.KeyArrowUp,
	} {
		got, err := input.ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := input.ParseKey("NotAKey")
	assert.ErrorContains(t, err, `unknown key "NotAKey"`)
}
