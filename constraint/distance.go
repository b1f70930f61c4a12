package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance keeps two particles RestLength apart (inextensible link)
type Distance struct {
	RestLength float64
	Tolerance  float64
}

// NewDistance creates a distance constraint with the default tolerance
func NewDistance(restLength float64) Distance {
	return Distance{RestLength: restLength, Tolerance: DefaultTolerance}
}

// Error returns the signed length error of the pair, positive when stretched
var _ Constraint = Distance{}

func (d Distance) Error(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len() - d.RestLength
}

// Relax applies one symmetric position correction:
// a moves toward b by delta*weightA, b moves toward a by delta*weightB.
// Coincident particles are skipped since the correction axis is undefined.
func (d Distance) Relax(a, b *mgl64.Vec3, weightA, weightB float64) bool {
	deltaVec := b.Sub(*a)
	length := deltaVec.Len()
	if length == 0 {
		return false
	}

	delta := length - d.RestLength
	if math.Abs(delta) < d.Tolerance {
		return false
	}

	direction := deltaVec.Mul(1 / length)
	if weightA != 0 {
		*a = a.Add(direction.Mul(delta * weightA))
	}
	if weightB != 0 {
		*b = b.Sub(direction.Mul(delta * weightB))
	}

	return true
}
