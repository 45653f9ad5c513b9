package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/config"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func scriptWorld(t *testing.T, cfg *config.Config, reloads <-chan *config.Config) *world {
	t.Helper()
	holds, err := cfg.Holds()
	require.NoError(t, err)
	return newWorld(cfg, input.NewScript(holds, cfg.ScriptLoop), reloads, false, quietLogger())
}

func TestWorldFacesTargetAtSpawn(t *testing.T) {
	cfg := testConfig(t, `
camera: {position: [0, 0, -10]}
target: {position: [0, 0, 0]}
`)
	w := scriptWorld(t, cfg, nil)

	tr := ecs.ReadComponent[camera.Transform](w.Storage, w.camera)
	require.NotNil(t, tr)
	assert.True(t, tr.Forward().ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9))
}

func TestWorldReplaysScript(t *testing.T) {
	cfg := testConfig(t, `
camera: {position: [0, 0, -10], speed: 10}
target: {position: [0, 0, 0]}
script:
  - {action: right, from: 0, to: 1}
`)
	w := scriptWorld(t, cfg, nil)

	for i := 0; i < 10; i++ {
		w.Scheduler.Once(0.05)
	}

	tr := ecs.ReadComponent[camera.Transform](w.Storage, w.camera)
	require.NotNil(t, tr)
	assert.Greater(t, tr.Position.X(), 0.0, "strafing right from facing +Z moves toward +X")

	want := tr.Position.Mul(-1).Normalize()
	assert.True(t, tr.Forward().ApproxEqualThreshold(want, 1e-9), "forward %v, want %v", tr.Forward(), want)
}

func TestReloadAppliesAfterTick(t *testing.T) {
	cfg := testConfig(t, `
camera: {position: [0, 0, -10], speed: 10}
target: {position: [0, 0, 0]}
`)
	reloads := make(chan *config.Config, 1)
	w := scriptWorld(t, cfg, reloads)

	reloads <- testConfig(t, `
camera: {position: [0, 0, -10], speed: 4, boost: 2}
target: {position: [5, 0, 0]}
script:
  - {action: forward, from: 0, to: 10}
`)
	w.Scheduler.Once(0.1)

	cam := ecs.ReadComponent[camera.FlyCamera](w.Storage, w.camera)
	require.NotNil(t, cam)
	assert.Equal(t, 4.0, cam.Speed)
	assert.Equal(t, 2.0, cam.Boost)

	target := ecs.ReadComponent[camera.Transform](w.Storage, w.target)
	require.NotNil(t, target)
	assert.Equal(t, mgl64.Vec3{5, 0, 0}, target.Position)

	var in *camera.Input
	require.True(t, w.Storage.ReadSingleton(&in))
	script, ok := in.Controls.(*input.Script)
	require.True(t, ok)
	assert.Equal(t, 10.0, script.Duration())
}

func TestReloadKeepsDisabledFlag(t *testing.T) {
	cfg := testConfig(t, `
camera: {position: [0, 0, -10]}
target: {position: [0, 0, 0]}
`)
	w := scriptWorld(t, cfg, nil)

	cam := ecs.ReadComponent[camera.FlyCamera](w.Storage, w.camera)
	require.NotNil(t, cam)
	cam.Disabled = true

	w.apply(testConfig(t, `
camera: {position: [0, 0, -10], speed: 7}
target: {position: [0, 0, 0]}
`))

	assert.True(t, cam.Disabled)
	assert.Equal(t, 7.0, cam.Speed)
}

func TestReloadUpdatesKeyboardBindings(t *testing.T) {
	cfg := testConfig(t, `
camera: {position: [0, 0, -10]}
target: {position: [0, 0, 0]}
`)
	keyboard := input.NewKeyboardWith(input.DefaultBindings(), func(ebiten.Key) bool { return false })
	w := newWorld(cfg, keyboard, nil, false, quietLogger())

	w.apply(testConfig(t, `
camera: {position: [0, 0, -10]}
target: {position: [0, 0, 0]}
bindings: {forward: I, backward: K, left: J, right: L, up: E, down: Q, boost: ""}
`))

	assert.False(t, keyboard.Bindings.HasBoost)
	assert.Equal(t, ebiten.KeyI, keyboard.Bindings.Keys[rig.Forward])
}
