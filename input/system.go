package input

import (
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/ecs"
)

// ScriptClockSystem advances a Script installed in the camera.Input singleton.
// Register it before camera.InputSystem so holds are sampled at the
// post-advance time. It does nothing when the controls are not a Script.
type ScriptClockSystem struct {
	Input ecs.Singleton[camera.Input]
}

func (s *ScriptClockSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	if in == nil {
		return
	}
	if script, ok := in.Controls.(*Script); ok {
		script.Advance(frame.DeltaTime)
	}
}
