package rig

import "github.com/go-gl/mathgl/mgl64"

// Displacement returns how far a pose with the given rotation moves in dt
// seconds: the intent rotated into world space, scaled by speed and dt.
func Displacement(rotation mgl64.Quat, intent mgl64.Vec3, speed, dt float64) mgl64.Vec3 {
	if dt <= 0 || speed == 0 || intent == (mgl64.Vec3{}) {
		return mgl64.Vec3{}
	}
	return rotation.Rotate(intent).Mul(speed * dt)
}

// Integrate moves p by its camera-relative displacement. The rotation is
// left unchanged.
func Integrate(p Pose, intent mgl64.Vec3, speed, dt float64) Pose {
	p.Position = p.Position.Add(Displacement(p.Rotation, intent, speed, dt))
	return p
}
