package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places a collider in world space
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return NewTransformAt(mgl64.Vec3{0, 0, 0})
}

// NewTransformAt creates an unrotated transform at the given position
func NewTransformAt(position mgl64.Vec3) Transform {
	return Transform{
		Position:        position,
		Rotation:        mgl64.QuatIdent(),
		InverseRotation: mgl64.QuatIdent(),
	}
}

// Normalized returns a copy with a unit rotation and its matching inverse.
// A zero quaternion (the zero value of Transform) is treated as identity.
func (t Transform) Normalized() Transform {
	if t.Rotation.Len() == 0 {
		t.Rotation = mgl64.QuatIdent()
	} else {
		t.Rotation = t.Rotation.Normalize()
	}
	t.InverseRotation = t.Rotation.Inverse()

	return t
}

// ToLocal converts a world space point into the transform's local frame
func (t Transform) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(point.Sub(t.Position))
}

// ToWorld converts a local space point into world space
func (t Transform) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}
