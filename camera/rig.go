package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/rig"
)

// SpawnTarget creates an entity the cameras can look at.
func SpawnTarget(storage *ecs.Storage, position mgl64.Vec3) ecs.EntityId {
	return storage.Spawn(NewTransform(position))
}

// SpawnCamera creates a fly camera at position locked onto target. The
// camera is oriented immediately so it faces the target before the first tick.
func SpawnCamera(storage *ecs.Storage, position mgl64.Vec3, cam FlyCamera, target ecs.EntityId) ecs.EntityId {
	transform := NewTransform(position)
	if t := ecs.ReadComponent[Transform](storage, target); t != nil {
		if pose, ok := rig.LookAt(transform.Pose, t.Position, cam.ReferenceUp()); ok {
			transform.Pose = pose
		}
	}

	return storage.Spawn(transform, cam, Intent{}, LookTarget{Entity: target})
}

// Options configures the systems added by RegisterSystems.
type Options struct {
	Logger *slog.Logger
	// PoseLogInterval is the period of pose log lines in seconds. Zero disables them.
	PoseLogInterval float64
}

// RegisterSystems adds the camera systems to scheduler in tick order:
// input, motion, orientation, pose logging.
func RegisterSystems(scheduler *ecs.Scheduler, opts Options) {
	scheduler.Register(&InputSystem{})
	scheduler.Register(&MotionSystem{})
	scheduler.Register(&OrientationSystem{Logger: opts.Logger})
	scheduler.Register(&PoseLogSystem{Interval: opts.PoseLogInterval, Logger: opts.Logger})
}
