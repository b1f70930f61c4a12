package actor

import "github.com/go-gl/mathgl/mgl64"

// Collider is a piece of static solid geometry the rope collides against.
// Colliders are never moved by the simulation.
type Collider struct {
	Transform Transform
	Shape     ShapeInterface
	Disabled  bool
}

// NewCollider creates a collider and computes its bounds
func NewCollider(transform Transform, shape ShapeInterface) *Collider {
	c := &Collider{Shape: shape}
	c.SetTransform(transform)

	return c
}

// SetTransform moves the collider and refreshes its bounds
func (c *Collider) SetTransform(transform Transform) {
	c.Transform = transform.Normalized()
	c.Shape.ComputeAABB(c.Transform)
}

func (c *Collider) GetAABB() AABB {
	return c.Shape.GetAABB()
}

// ClosestPoint returns the point of the collider closest to point
func (c *Collider) ClosestPoint(point mgl64.Vec3) mgl64.Vec3 {
	return c.Shape.ClosestPoint(c.Transform, point)
}

// Distance from point to the collider surface, 0 when point is inside
func (c *Collider) Distance(point mgl64.Vec3) float64 {
	return point.Sub(c.ClosestPoint(point)).Len()
}

// IsUnbounded reports whether the collider extends infinitely
func (c *Collider) IsUnbounded() bool {
	_, isPlane := c.Shape.(*Plane)

	return isPlane
}
