package camera_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boostControls struct {
	rig.HeldSet
	boost bool
}

func (b boostControls) Boosting() bool { return b.boost }

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *camera.Input
	logs      *bytes.Buffer
}

func newWorld(t *testing.T, poseLogInterval float64) *world {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	input := ecs.NewSingleton(storage, camera.Input{Controls: rig.HeldSet{}})
	ecs.NewSingleton[camera.InputFocus](storage)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scheduler := ecs.NewScheduler(storage)
	camera.RegisterSystems(scheduler, camera.Options{Logger: logger, PoseLogInterval: poseLogInterval})

	return &world{storage: storage, scheduler: scheduler, input: input.Get(), logs: logs}
}

func (w *world) transform(id ecs.EntityId) *camera.Transform {
	return ecs.ReadComponent[camera.Transform](w.storage, id)
}

func assertFacing(t *testing.T, cam, target *camera.Transform) {
	t.Helper()
	want := target.Position.Sub(cam.Position).Normalize()
	assert.True(t, cam.Forward().ApproxEqualThreshold(want, 1e-9), "forward %v, want %v", cam.Forward(), want)
}

func TestSpawnCameraFacesTarget(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{4, 0, 4})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 2, -6}, camera.DefaultFlyCamera(), target)

	assertFacing(t, w.transform(cam), w.transform(target))
}

func TestTickMovesThenLooks(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	w.input.Controls = rig.HeldSet{rig.Right: true}
	w.scheduler.Once(0.1)

	tr := w.transform(cam)
	// Facing +Z the right axis is +X: 15 u/s for 0.1s.
	assert.True(t, tr.Position.ApproxEqualThreshold(mgl64.Vec3{1.5, 0, -10}, 1e-9), "got %v", tr.Position)
	assertFacing(t, tr, w.transform(target))

	intent := ecs.ReadComponent[camera.Intent](w.storage, cam)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, intent.Vec)

	for i := 0; i < 120; i++ {
		w.scheduler.Once(1.0 / 60.0)
		assertFacing(t, w.transform(cam), w.transform(target))
	}
}

func TestUpMovesAlongFacing(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	w.input.Controls = rig.HeldSet{rig.Up: true}
	w.scheduler.Once(0.2)

	tr := w.transform(cam)
	assert.True(t, tr.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0, -7}, 1e-9), "got %v", tr.Position)
}

func TestZeroDeltaKeepsPosition(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{1, 1, 1})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	w.input.Controls = rig.HeldSet{rig.Forward: true, rig.Left: true, rig.Up: true}
	before := w.transform(cam).Position
	w.scheduler.Once(0)
	assert.Equal(t, before, w.transform(cam).Position)
}

func TestBoost(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{0, 0, 100})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{}, camera.FlyCamera{Speed: 10, Boost: 3}, target)

	w.input.Controls = boostControls{HeldSet: rig.HeldSet{rig.Up: true}, boost: true}
	w.scheduler.Once(1)
	assert.InDelta(t, 30, w.transform(cam).Position.Z(), 1e-9)

	w.input.Controls = boostControls{HeldSet: rig.HeldSet{rig.Up: true}}
	w.scheduler.Once(1)
	assert.InDelta(t, 40, w.transform(cam).Position.Z(), 1e-9)
}

func TestInputFocusCaptured(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	var focus *camera.InputFocus
	require.True(t, w.storage.ReadSingleton(&focus))
	focus.Captured = true

	w.input.Controls = rig.HeldSet{rig.Up: true}
	w.scheduler.Once(1)
	assert.Equal(t, mgl64.Vec3{0, 0, -10}, w.transform(cam).Position)
}

func TestDisabledCamera(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.FlyCamera{Speed: 15, Disabled: true}, target)
	before := *w.transform(cam)

	w.input.Controls = rig.HeldSet{rig.Right: true}
	w.transform(target).Position = mgl64.Vec3{5, 5, 5}
	w.scheduler.Once(1)

	assert.Equal(t, before, *w.transform(cam))
	assert.Equal(t, camera.Intent{}, *ecs.ReadComponent[camera.Intent](w.storage, cam))
}

func TestMovingTarget(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	w.transform(target).Position = mgl64.Vec3{10, 0, -10}
	w.scheduler.Once(1.0 / 60.0)
	assertFacing(t, w.transform(cam), w.transform(target))
	assert.True(t, w.transform(cam).Forward().ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9))
}

func TestMissingTargetWarnsOnce(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)
	before := w.transform(cam).Rotation

	w.storage.Delete(target)
	w.input.Controls = rig.HeldSet{rig.Right: true}
	for i := 0; i < 3; i++ {
		w.scheduler.Once(0.1)
	}

	assert.Equal(t, before, w.transform(cam).Rotation, "orientation is frozen without a target")
	assert.InDelta(t, 4.5, w.transform(cam).Position.X(), 1e-9, "motion continues without a target")
	assert.Equal(t, 1, bytes.Count(w.logs.Bytes(), []byte("look target has no transform")))

	replacement := camera.SpawnTarget(w.storage, mgl64.Vec3{0, 0, 10})
	ecs.ReadComponent[camera.LookTarget](w.storage, cam).Entity = replacement
	w.scheduler.Once(0)
	assert.Contains(t, w.logs.String(), "look target resolved")
	assertFacing(t, w.transform(cam), w.transform(replacement))
}

func TestCameraAtTarget(t *testing.T) {
	w := newWorld(t, 0)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{0, 0, 0})
	cam := camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -1.5}, camera.DefaultFlyCamera(), target)
	before := w.transform(cam).Rotation

	w.input.Controls = rig.HeldSet{rig.Up: true}
	w.scheduler.Once(0.1)

	assert.True(t, w.transform(cam).Position.ApproxEqualThreshold(mgl64.Vec3{}, 1e-9))
	assert.Equal(t, before, w.transform(cam).Rotation)
	assert.Contains(t, w.logs.String(), "camera is at its target")
}

func TestPoseLogInterval(t *testing.T) {
	w := newWorld(t, 0.5)
	target := camera.SpawnTarget(w.storage, mgl64.Vec3{})
	camera.SpawnCamera(w.storage, mgl64.Vec3{0, 0, -10}, camera.DefaultFlyCamera(), target)

	for i := 0; i < 10; i++ {
		w.scheduler.Once(0.125)
	}

	assert.Equal(t, 2, bytes.Count(w.logs.Bytes(), []byte("camera pose")))
}
