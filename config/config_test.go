package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flycam/config"
	"github.com/plus3/flycam/input"
	"github.com/plus3/flycam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	b, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, input.DefaultBindings(), b)
	assert.Equal(t, rig.DefaultSpeed, cfg.Camera.Speed)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flycam.yaml")
	data := []byte(`
camera:
  position: [1, 2, 3]
  speed: 20
target:
  position: [0, 0, 5]
bindings:
  forward: ArrowUp
  boost: ""
tick_rate: 120
logging:
  level: debug
script:
  - {action: forward, from: 0, to: 1.5}
  - {action: Up, from: 1, to: 2, boost: true}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, cfg.Camera.Position.Vec())
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, cfg.Target.Position.Vec())
	assert.Equal(t, 20.0, cfg.Camera.Speed)
	assert.Equal(t, 3.0, cfg.Camera.Boost, "unset fields keep defaults")
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	b, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyArrowUp, b.Keys[rig.Forward])
	assert.Equal(t, ebiten.KeyS, b.Keys[rig.Backward])
	assert.False(t, b.HasBoost)

	holds, err := cfg.Holds()
	require.NoError(t, err)
	assert.Equal(t, []input.Hold{
		{Action: rig.Forward, From: 0, To: 1.5},
		{Action: rig.Up, From: 1, To: 2, Boost: true},
	}, holds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"short vector", "camera: {position: [1, 2]}", "expected 3 components"},
		{"negative speed", "camera: {speed: -1}", "camera.speed"},
		{"zero up", "camera: {up: [0, 0, 0]}", "camera.up"},
		{"camera on target", "camera: {position: [0, 0, 0]}", "camera.position"},
		{"tick rate", "tick_rate: 0", "tick_rate"},
		{"log level", "logging: {level: loud}", "logging.level"},
		{"log format", "logging: {format: xml}", "logging.format"},
		{"unknown key", "bindings: {left: Banana}", "bindings.left"},
		{"unknown boost key", "bindings: {boost: Banana}", "bindings.boost"},
		{"unknown action", "script: [{action: jump, from: 0, to: 1}]", "script[0].action"},
		{"reversed hold", "script: [{action: left, from: 2, to: 1}]", "script[0]"},
		{"not yaml", "camera: [", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidationErrorsWrapErrInvalid(t *testing.T) {
	_, err := config.Parse([]byte("tick_rate: -5"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestShippedExampleLoads(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "cmd", "flycam", "flycam.yaml"))
	require.NoError(t, err)

	holds, err := cfg.Holds()
	require.NoError(t, err)
	assert.Len(t, holds, 4)
	assert.Equal(t, 8.0, cfg.ScriptLoop)
}
