package camera

import (
	"log/slog"

	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/rig"
)

// InputSystem samples the Input singleton into every camera's Intent.
type InputSystem struct {
	Cameras ecs.Query[struct {
		*FlyCamera
		*Intent
	}]
	Input ecs.Singleton[Input]
	Focus ecs.Singleton[InputFocus]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	var controls rig.Controls
	if in := s.Input.Get(); in != nil {
		controls = in.Controls
	}
	if focus := s.Focus.Get(); focus != nil && focus.Captured {
		controls = nil
	}

	boosting := false
	if b, ok := controls.(Booster); ok {
		boosting = b.Boosting()
	}

	for cam := range s.Cameras.Values() {
		if cam.FlyCamera.Disabled {
			*cam.Intent = Intent{}
			continue
		}
		cam.Intent.Vec = rig.SampleIntent(controls)
		cam.Intent.Boosting = boosting
	}
}

// MotionSystem moves each camera along its intent, relative to its current
// orientation.
type MotionSystem struct {
	Cameras ecs.Query[struct {
		*Transform
		*FlyCamera
		*Intent
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	for cam := range s.Cameras.Values() {
		if cam.FlyCamera.Disabled {
			continue
		}
		speed := cam.FlyCamera.EffectiveSpeed(cam.Intent.Boosting)
		cam.Transform.Pose = rig.Integrate(cam.Transform.Pose, cam.Intent.Vec, speed, frame.DeltaTime)
	}
}

// OrientationSystem turns each camera to face its LookTarget. It must run
// after MotionSystem so the orientation reflects the post-move position.
type OrientationSystem struct {
	Cameras ecs.Query[struct {
		ecs.EntityId
		*Transform
		*FlyCamera
		*LookTarget
	}]
	Logger *slog.Logger

	unresolved map[ecs.EntityId]bool
}

func (s *OrientationSystem) Execute(frame *ecs.UpdateFrame) {
	if s.unresolved == nil {
		s.unresolved = make(map[ecs.EntityId]bool)
	}

	for cam := range s.Cameras.Values() {
		if cam.FlyCamera.Disabled {
			continue
		}

		target := ecs.ReadComponent[Transform](frame.Storage, cam.LookTarget.Entity)
		if target == nil {
			if !s.unresolved[cam.EntityId] {
				s.logger().Warn("look target has no transform, orientation frozen",
					"camera", cam.EntityId, "target", cam.LookTarget.Entity)
				s.unresolved[cam.EntityId] = true
			}
			continue
		}
		if s.unresolved[cam.EntityId] {
			s.logger().Info("look target resolved", "camera", cam.EntityId, "target", cam.LookTarget.Entity)
			delete(s.unresolved, cam.EntityId)
		}

		pose, ok := rig.LookAt(cam.Transform.Pose, target.Position, cam.FlyCamera.ReferenceUp())
		if !ok {
			s.logger().Debug("camera is at its target, keeping orientation", "camera", cam.EntityId)
			continue
		}
		cam.Transform.Pose = pose
	}
}

func (s *OrientationSystem) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// PoseLogSystem logs every camera's pose once per Interval seconds. A
// non-positive Interval disables it.
type PoseLogSystem struct {
	Cameras ecs.Query[struct {
		ecs.EntityId
		*Transform
		*FlyCamera
	}]
	Interval float64
	Logger   *slog.Logger

	elapsed float64
}

func (s *PoseLogSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Interval <= 0 {
		return
	}

	s.elapsed += frame.DeltaTime
	if s.elapsed < s.Interval {
		return
	}
	s.elapsed -= s.Interval
	if s.elapsed >= s.Interval {
		s.elapsed = 0
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for cam := range s.Cameras.Values() {
		pos, fwd := cam.Transform.Position, cam.Transform.Forward()
		logger.Info("camera pose",
			"camera", cam.EntityId,
			"tick", frame.Tick,
			"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
			"fx", fwd.X(), "fy", fwd.Y(), "fz", fwd.Z(),
		)
	}
}
