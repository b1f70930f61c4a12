package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypePlane
	ShapeTypeCapsule
)

func (s ShapeType) String() string {
	switch s {
	case ShapeTypeSphere:
		return "sphere"
	case ShapeTypeBox:
		return "box"
	case ShapeTypePlane:
		return "plane"
	case ShapeTypeCapsule:
		return "capsule"
	}

	return "unknown"
}

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// ClosestPoint returns the point of the solid closest to point.
	// A point inside the solid is returned unchanged.
	ClosestPoint(transform Transform, point mgl64.Vec3) mgl64.Vec3
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) ComputeAABB(transform Transform) {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	// Expand the bounds with each rotated corner
	first := true
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				corner := transform.ToWorld(mgl64.Vec3{sx * hx, sy * hy, sz * hz})
				if first {
					b.aabb = AABB{Min: corner, Max: corner}
					first = false
					continue
				}
				b.aabb = b.aabb.Union(AABB{Min: corner, Max: corner})
			}
		}
	}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

func (b *Box) ClosestPoint(transform Transform, point mgl64.Vec3) mgl64.Vec3 {
	local := transform.ToLocal(point)
	bounds := AABB{Min: b.HalfExtents.Mul(-1), Max: b.HalfExtents}
	if bounds.ContainsPoint(local) {
		return point
	}

	return transform.ToWorld(bounds.Clamp(local))
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64
	aabb   AABB
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	s.aabb = AABBAround(transform.Position, s.Radius)
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) ClosestPoint(transform Transform, point mgl64.Vec3) mgl64.Vec3 {
	offset := point.Sub(transform.Position)
	distance := offset.Len()
	if distance <= s.Radius {
		return point
	}

	return transform.Position.Add(offset.Mul(s.Radius / distance))
}

// Capsule is a segment swept by a sphere. The segment runs along the local
// Y axis from -HalfHeight to +HalfHeight.
type Capsule struct {
	Radius     float64
	HalfHeight float64
	aabb       AABB
}

func (c *Capsule) Type() ShapeType {
	return ShapeTypeCapsule
}

func (c *Capsule) ComputeAABB(transform Transform) {
	top := transform.ToWorld(mgl64.Vec3{0, c.HalfHeight, 0})
	bottom := transform.ToWorld(mgl64.Vec3{0, -c.HalfHeight, 0})

	c.aabb = AABBAround(top, c.Radius).Union(AABBAround(bottom, c.Radius))
}

func (c *Capsule) GetAABB() AABB {
	return c.aabb
}

func (c *Capsule) ClosestPoint(transform Transform, point mgl64.Vec3) mgl64.Vec3 {
	local := transform.ToLocal(point)
	axis := mgl64.Vec3{0, math.Max(-c.HalfHeight, math.Min(local.Y(), c.HalfHeight)), 0}

	offset := local.Sub(axis)
	distance := offset.Len()
	if distance <= c.Radius {
		return point
	}

	return transform.ToWorld(axis.Add(offset.Mul(c.Radius / distance)))
}

// Plane represents an infinite plane collision shape
// The plane is defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the origin along the normal.
// Everything behind the plane is solid.
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)
	aabb     AABB
}

func (p *Plane) Type() ShapeType {
	return ShapeTypePlane
}

// ComputeAABB bounds the plane surface. Axes not aligned with the normal are
// unbounded, so planes are never inserted in a spatial grid.
func (p *Plane) ComputeAABB(transform Transform) {
	const infinity = 1e10

	planePoint := p.origin(transform)
	min := planePoint
	max := planePoint

	for axis := 0; axis < 3; axis++ {
		if math.Abs(p.Normal[axis]) < 1.0 {
			min[axis] = -infinity
			max[axis] = infinity
		}
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

func (p *Plane) ClosestPoint(transform Transform, point mgl64.Vec3) mgl64.Vec3 {
	height := p.SignedDistance(transform, point)
	if height <= 0 {
		return point
	}

	return point.Sub(p.Normal.Mul(height))
}

// SignedDistance returns the height of point above the plane surface
func (p *Plane) SignedDistance(transform Transform, point mgl64.Vec3) float64 {
	return p.Normal.Dot(point.Sub(p.origin(transform)))
}

// origin is the point on the plane closest to the transform position
func (p *Plane) origin(transform Transform) mgl64.Vec3 {
	return p.Normal.Mul(-p.Distance).Add(transform.Position)
}
