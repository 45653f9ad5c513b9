package rig

import "github.com/go-gl/mathgl/mgl64"

// LookAt orients p so its forward axis points at target, using up as the
// reference up vector. The returned pose keeps p's position.
//
// If target coincides with the position there is no direction to face: the
// rotation is left unchanged and ok is false.
//
// If the direction is parallel to up, the current right axis is kept (with
// any component along the new direction removed), so passing over or under
// the target pitches the camera without spinning it. Should the current right
// axis itself be parallel to the direction, the current up axis is used as
// the reference instead.
func LookAt(p Pose, target, up mgl64.Vec3) (result Pose, ok bool) {
	dir := target.Sub(p.Position)
	dist := dir.Len()
	if dist < Epsilon {
		return p, false
	}
	forward := dir.Mul(1 / dist)

	right, ok := rightAxis(p, forward, up)
	if !ok {
		return p, false
	}

	p.Rotation = basisToQuat(right, forward.Cross(right), forward)
	return p, true
}

func rightAxis(p Pose, forward, up mgl64.Vec3) (mgl64.Vec3, bool) {
	if r := up.Cross(forward); r.Len() >= Epsilon {
		return r.Normalize(), true
	}

	current := p.Right()
	if r := current.Sub(forward.Mul(current.Dot(forward))); r.Len() >= Epsilon {
		return r.Normalize(), true
	}

	if r := p.Up().Cross(forward); r.Len() >= Epsilon {
		return r.Normalize(), true
	}
	return mgl64.Vec3{}, false
}

// basisToQuat converts an orthonormal right-handed basis into the rotation
// that maps the local axes onto it.
func basisToQuat(right, up, forward mgl64.Vec3) mgl64.Quat {
	m := mgl64.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		forward.Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return mgl64.Mat4ToQuat(m).Normalize()
}
