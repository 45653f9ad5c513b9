// Package camera runs the fly camera rig as ECS systems. Each tick the
// systems sample held keys into an intent, move every fly camera relative to
// its orientation, and then turn it to face its target.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flycam/ecs"
	"github.com/plus3/flycam/rig"
)

// Transform is the position and orientation of an entity.
type Transform struct {
	rig.Pose
}

// NewTransform returns a transform at position with the identity rotation.
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{Pose: rig.NewPose(position)}
}

// FlyCamera marks an entity as a keyboard-driven camera.
type FlyCamera struct {
	// Speed in world units per second.
	Speed float64
	// Boost multiplies Speed while the boost key is held. Values <= 1 disable it.
	Boost float64
	// Up is the reference up vector for orientation. Zero means rig.WorldUp.
	Up       mgl64.Vec3
	Disabled bool
}

// DefaultFlyCamera returns a camera moving at rig.DefaultSpeed without boost.
func DefaultFlyCamera() FlyCamera {
	return FlyCamera{Speed: rig.DefaultSpeed, Boost: 1}
}

// EffectiveSpeed returns the speed to move at this tick.
func (c FlyCamera) EffectiveSpeed(boosting bool) float64 {
	if boosting && c.Boost > 1 {
		return c.Speed * c.Boost
	}
	return c.Speed
}

// ReferenceUp returns Up, or rig.WorldUp when Up is zero.
func (c FlyCamera) ReferenceUp() mgl64.Vec3 {
	if c.Up == (mgl64.Vec3{}) {
		return rig.WorldUp
	}
	return c.Up
}

// Intent is the movement intent sampled for a camera this tick.
type Intent struct {
	Vec      mgl64.Vec3
	Boosting bool
}

// LookTarget points a camera at another entity's Transform.
type LookTarget struct {
	Entity ecs.EntityId
}

// Input is the singleton holding the key-state collaborator.
type Input struct {
	Controls rig.Controls
}

// Booster is implemented by controls that also report a speed boost key.
type Booster interface {
	Boosting() bool
}

// InputFocus is a singleton set by overlays that consume the keyboard. While
// Captured is true cameras receive a zero intent.
type InputFocus struct {
	Captured bool
}

// RegisterComponents registers every camera component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[FlyCamera](registry)
	ecs.RegisterComponent[Intent](registry)
	ecs.RegisterComponent[LookTarget](registry)
	ecs.RegisterComponent[Input](registry)
	ecs.RegisterComponent[InputFocus](registry)
}
