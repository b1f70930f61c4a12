package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestSphereClosestPoint(t *testing.T) {
	sphere := &Sphere{Radius: 1}
	transform := NewTransformAt(mgl64.Vec3{0, 2, 0})

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"above", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 3, 0}},
		{"side", mgl64.Vec3{-4, 2, 0}, mgl64.Vec3{-1, 2, 0}},
		{"diagonal", mgl64.Vec3{3, 5, 0}, mgl64.Vec3{math.Sqrt2 / 2, 2 + math.Sqrt2/2, 0}},
		{"inside unchanged", mgl64.Vec3{0.2, 2.1, 0}, mgl64.Vec3{0.2, 2.1, 0}},
		{"surface unchanged", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sphere.ClosestPoint(transform, tt.point)
			if !vec3Equal(got, tt.expected, 1e-9) {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestBoxClosestPoint(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 0.5, 2}}

	t.Run("axis aligned", func(t *testing.T) {
		transform := NewTransformAt(mgl64.Vec3{0, 0, 0})

		tests := []struct {
			name     string
			point    mgl64.Vec3
			expected mgl64.Vec3
		}{
			{"above face", mgl64.Vec3{0.5, 3, 1}, mgl64.Vec3{0.5, 0.5, 1}},
			{"edge region", mgl64.Vec3{3, 3, 0}, mgl64.Vec3{1, 0.5, 0}},
			{"corner region", mgl64.Vec3{-3, -3, -3}, mgl64.Vec3{-1, -0.5, -2}},
			{"inside unchanged", mgl64.Vec3{0.1, 0.1, 0.1}, mgl64.Vec3{0.1, 0.1, 0.1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := box.ClosestPoint(transform, tt.point)
				if !vec3Equal(got, tt.expected, 1e-9) {
					t.Errorf("ClosestPoint(%v) = %v, want %v", tt.point, got, tt.expected)
				}
			})
		}
	})

	t.Run("rotated 90 degrees around Z", func(t *testing.T) {
		transform := Transform{
			Position: mgl64.Vec3{0, 0, 0},
			Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
		}.Normalized()

		// Local X now points along world Y: the box is 2 tall and 1 wide
		got := box.ClosestPoint(transform, mgl64.Vec3{0, 5, 0})
		if !vec3Equal(got, mgl64.Vec3{0, 1, 0}, 1e-9) {
			t.Errorf("ClosestPoint = %v, want (0, 1, 0)", got)
		}

		got = box.ClosestPoint(transform, mgl64.Vec3{5, 0, 0})
		if !vec3Equal(got, mgl64.Vec3{0.5, 0, 0}, 1e-9) {
			t.Errorf("ClosestPoint = %v, want (0.5, 0, 0)", got)
		}
	})
}

func TestPlaneClosestPoint(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}
	transform := NewTransformAt(mgl64.Vec3{0, -1, 0})

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"above", mgl64.Vec3{3, 2, -7}, mgl64.Vec3{3, -1, -7}},
		{"on surface", mgl64.Vec3{1, -1, 1}, mgl64.Vec3{1, -1, 1}},
		{"below unchanged", mgl64.Vec3{1, -4, 1}, mgl64.Vec3{1, -4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plane.ClosestPoint(transform, tt.point)
			if !vec3Equal(got, tt.expected, 1e-9) {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}

	if d := plane.SignedDistance(transform, mgl64.Vec3{0, 1.5, 0}); !floatEqual(d, 2.5, 1e-12) {
		t.Errorf("SignedDistance = %v, want 2.5", d)
	}
}

func TestPlaneDistanceOffset(t *testing.T) {
	// Normal · p + Distance = 0 with Distance = -2 is the plane y = 2
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: -2}
	transform := NewTransform()

	got := plane.ClosestPoint(transform, mgl64.Vec3{0, 5, 0})
	if !vec3Equal(got, mgl64.Vec3{0, 2, 0}, 1e-9) {
		t.Errorf("ClosestPoint = %v, want (0, 2, 0)", got)
	}
}

func TestCapsuleClosestPoint(t *testing.T) {
	capsule := &Capsule{Radius: 0.5, HalfHeight: 1}
	transform := NewTransform()

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"side of cylinder", mgl64.Vec3{3, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0}},
		{"above top cap", mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0, 1.5, 0}},
		{"below bottom cap", mgl64.Vec3{0, -4, 0}, mgl64.Vec3{0, -1.5, 0}},
		{"inside unchanged", mgl64.Vec3{0.1, 1.2, 0}, mgl64.Vec3{0.1, 1.2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capsule.ClosestPoint(transform, tt.point)
			if !vec3Equal(got, tt.expected, 1e-9) {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestSphereComputeAABB(t *testing.T) {
	sphere := &Sphere{Radius: 2}
	sphere.ComputeAABB(NewTransformAt(mgl64.Vec3{1, 1, 1}))

	aabb := sphere.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{-1, -1, -1}, 1e-12) || !vec3Equal(aabb.Max, mgl64.Vec3{3, 3, 3}, 1e-12) {
		t.Errorf("AABB = %v", aabb)
	}
}

func TestBoxComputeAABBWithRotation(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	transform := Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0}),
	}.Normalized()
	box.ComputeAABB(transform)

	aabb := box.GetAABB()
	// A unit cube rotated 45° around Y spans sqrt(2) on X and Z
	if !floatEqual(aabb.Max.X(), math.Sqrt2, 1e-9) || !floatEqual(aabb.Max.Z(), math.Sqrt2, 1e-9) {
		t.Errorf("rotated AABB max = %v", aabb.Max)
	}
	if !floatEqual(aabb.Max.Y(), 1, 1e-9) || !floatEqual(aabb.Min.Y(), -1, 1e-9) {
		t.Errorf("rotation around Y should keep Y extents, got %v", aabb)
	}
}

func TestCapsuleComputeAABB(t *testing.T) {
	capsule := &Capsule{Radius: 0.25, HalfHeight: 1}
	capsule.ComputeAABB(NewTransformAt(mgl64.Vec3{0, 1, 0}))

	aabb := capsule.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{-0.25, -0.25, -0.25}, 1e-12) || !vec3Equal(aabb.Max, mgl64.Vec3{0.25, 2.25, 0.25}, 1e-12) {
		t.Errorf("AABB = %v", aabb)
	}
}

func TestPlaneComputeAABB(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}}
	plane.ComputeAABB(NewTransformAt(mgl64.Vec3{0, 3, 0}))

	aabb := plane.GetAABB()
	if aabb.Min.Y() != 3 || aabb.Max.Y() != 3 {
		t.Errorf("plane AABB should be flat at y=3, got %v", aabb)
	}
	if aabb.Max.X() < 1e9 || aabb.Min.Z() > -1e9 {
		t.Errorf("plane AABB should be unbounded on X and Z, got %v", aabb)
	}
}

func TestShapeTypes(t *testing.T) {
	tests := []struct {
		shape    ShapeInterface
		expected ShapeType
		name     string
	}{
		{&Sphere{}, ShapeTypeSphere, "sphere"},
		{&Box{}, ShapeTypeBox, "box"},
		{&Plane{}, ShapeTypePlane, "plane"},
		{&Capsule{}, ShapeTypeCapsule, "capsule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shape.Type() != tt.expected {
				t.Errorf("Type() = %v, want %v", tt.shape.Type(), tt.expected)
			}
			if tt.shape.Type().String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.shape.Type().String(), tt.name)
			}
		})
	}
}
