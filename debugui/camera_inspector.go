package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/ecs"
)

// CameraInspector shows every fly camera's pose, intent and target, and lets
// speed and the enabled flag be edited live.
type CameraInspector struct {
	cameras *ecs.Query[struct {
		ecs.EntityId
		*camera.Transform
		*camera.FlyCamera
		Intent *camera.Intent     `ecs:"optional"`
		Target *camera.LookTarget `ecs:"optional"`
	}]
	storage *ecs.Storage
}

func NewCameraInspector(storage *ecs.Storage) *CameraInspector {
	return &CameraInspector{
		cameras: ecs.NewQuery[struct {
			ecs.EntityId
			*camera.Transform
			*camera.FlyCamera
			Intent *camera.Intent     `ecs:"optional"`
			Target *camera.LookTarget `ecs:"optional"`
		}](storage),
		storage: storage,
	}
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

func (ci *CameraInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 280), imgui.CondOnce)
	if !imgui.BeginV("Cameras", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for cam := range ci.cameras.Values() {
		if !imgui.TreeNodeStr(fmt.Sprintf("Camera %d", cam.EntityId)) {
			continue
		}

		imgui.Text("Position: " + formatVec(cam.Transform.Position))
		imgui.Text("Forward:  " + formatVec(cam.Transform.Forward()))
		imgui.Text("Up:       " + formatVec(cam.Transform.Up()))

		if cam.Intent != nil {
			imgui.Text("Intent:   " + formatVec(cam.Intent.Vec))
			if cam.Intent.Boosting {
				imgui.SameLine()
				imgui.Text("[boost]")
			}
		}

		if cam.Target != nil {
			if t := ecs.ReadComponent[camera.Transform](ci.storage, cam.Target.Entity); t != nil {
				imgui.Text(fmt.Sprintf("Target %d at %s, distance %.2f",
					cam.Target.Entity, formatVec(t.Position), t.Position.Sub(cam.Transform.Position).Len()))
			} else {
				imgui.Text(fmt.Sprintf("Target %d missing", cam.Target.Entity))
			}
		}

		imgui.Separator()

		speed := float32(cam.FlyCamera.Speed)
		if imgui.InputFloat("Speed", &speed) && speed >= 0 {
			cam.FlyCamera.Speed = float64(speed)
		}
		boost := float32(cam.FlyCamera.Boost)
		if imgui.InputFloat("Boost", &boost) && boost >= 0 {
			cam.FlyCamera.Boost = float64(boost)
		}
		enabled := !cam.FlyCamera.Disabled
		if imgui.Checkbox("Enabled", &enabled) {
			cam.FlyCamera.Disabled = !enabled
		}

		imgui.TreePop()
	}

	imgui.End()
}
