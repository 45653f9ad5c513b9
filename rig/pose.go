package rig

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the distance under which two points are treated as equal and
// two directions as parallel.
const Epsilon = 1e-9

// DefaultSpeed is the camera speed in world units per second.
const DefaultSpeed = 15.0

// WorldUp is the default reference up vector for LookAt.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Pose is a camera position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose returns a pose at position with the identity rotation.
func NewPose(position mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: mgl64.QuatIdent()}
}

// Right returns the pose's local +X axis in world space.
func (p Pose) Right() mgl64.Vec3 {
	return p.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Up returns the pose's local +Y axis in world space.
func (p Pose) Up() mgl64.Vec3 {
	return p.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Forward returns the pose's local +Z axis in world space.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// ToLocal expresses a world-space point in the pose's local frame.
func (p Pose) ToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Conjugate().Rotate(world.Sub(p.Position))
}
