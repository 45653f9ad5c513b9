package rig

import "github.com/go-gl/mathgl/mgl64"

// SampleIntent converts held actions into a movement intent in the camera's
// local frame. Forward/Backward drive Y, Left/Right drive X and Up/Down
// drive Z. Opposing actions cancel. The result never exceeds unit length, so
// pressing several axes at once is no faster than pressing one.
func SampleIntent(c Controls) mgl64.Vec3 {
	var v mgl64.Vec3
	if c == nil {
		return v
	}

	if c.Held(Forward) {
		v[1]++
	}
	if c.Held(Backward) {
		v[1]--
	}
	if c.Held(Left) {
		v[0]--
	}
	if c.Held(Right) {
		v[0]++
	}
	if c.Held(Up) {
		v[2]++
	}
	if c.Held(Down) {
		v[2]--
	}

	if v.Len() > 1 {
		v = v.Normalize()
	}
	return v
}
