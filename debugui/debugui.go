// Package debugui provides Dear ImGui inspector windows for the fly camera.
// Windows are ECS entities carrying an ImguiItem; ImguiSystem queues their
// render functions each tick and reports keyboard capture to the cameras.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flycam/camera"
	"github.com/plus3/flycam/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiSystem defers every ImguiItem's render function and mirrors ImGui's
// keyboard capture into the camera.InputFocus singleton, so typing into a
// widget does not fly the camera.
type ImguiSystem struct {
	Items ecs.Query[struct{ *ImguiItem }]
	Focus ecs.Singleton[camera.InputFocus]
}

// Execute updates input focus and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if focus := i.Focus.Get(); focus != nil {
		focus.Captured = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// RegisterComponents registers the debug UI component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn creates the camera inspector and performance windows.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	inspector := NewCameraInspector(storage)
	stats := NewPerformanceStats(scheduler, 120)

	storage.Spawn(ImguiItem{Render: inspector.Render})
	storage.Spawn(ImguiItem{Render: stats.Render})
}
