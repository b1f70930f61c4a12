// Package constraint holds the position based constraints binding rope
// particles together.
package constraint

import "github.com/go-gl/mathgl/mgl64"

const (
	// DefaultTolerance is the length error under which a pair is left alone.
	// Correcting below it only chases floating-point noise and makes the rope jitter.
	DefaultTolerance = 0.001

	// DefaultIterations is the number of alternating relaxation sweeps per step
	DefaultIterations = 2
)

// Constraint binds a pair of particle positions
type Constraint interface {
	// Relax moves a and b toward satisfying the constraint, splitting the
	// correction by the given weights. It reports whether anything moved.
	Relax(a, b *mgl64.Vec3, weightA, weightB float64) bool
}

// Weights returns the correction split for a pair. A pinned particle absorbs
// nothing and the other takes the whole correction.
func Weights(pinnedA, pinnedB bool) (float64, float64) {
	switch {
	case pinnedA && pinnedB:
		return 0, 0
	case pinnedA:
		return 0, 1
	case pinnedB:
		return 1, 0
	}

	return 0.5, 0.5
}
