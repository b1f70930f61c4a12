// Package rope simulates an inextensible rope as a chain of point masses.
//
// Each step the first particle is driven to an external anchor position, the
// free particles are advanced with Verlet integration and pushed out of
// nearby collision geometry, then adjacent particles are pulled back to their
// rest distance by a fixed number of relaxation sweeps.
package rope

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/rope/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultAirFriction is the fraction of velocity lost every step.
	// It is not scaled by the step duration.
	DefaultAirFriction = 0.035

	// DefaultCollisionRadius is the thickness of a particle against colliders
	DefaultCollisionRadius = 0.1

	// DefaultFixedDeltaTime is the nominal tick used to turn anchor motion
	// into an acceleration
	DefaultFixedDeltaTime = 0.02
)

var (
	ErrInvalidResolution = errors.New("rope resolution must be at least 1")
	ErrInvalidLength     = errors.New("rope length must be positive and finite")
	ErrInvalidSettings   = errors.New("invalid rope settings")
)

// Settings are the tunables of a rope, fixed at construction
type Settings struct {
	// Gravity acceleration (m/s²) applied to every free particle
	Gravity         mgl64.Vec3
	AirFriction     float64 // 0.0 - 1.0, fraction of velocity lost per step
	CollisionRadius float64
	// FixedDeltaTime converts the anchor displacement into an acceleration.
	// It is deliberately distinct from the step duration given to UpdatePhysics.
	FixedDeltaTime float64
	// Iterations is the number of alternating relaxation sweeps per step.
	// More sweeps make the rope stiffer at a linear cost.
	Iterations int
	// Tolerance is the length error under which a segment is not corrected
	Tolerance float64
}

// DefaultSettings returns the reference tuning, with Earth gravity
func DefaultSettings() Settings {
	return Settings{
		Gravity:         mgl64.Vec3{0, -9.81, 0},
		AirFriction:     DefaultAirFriction,
		CollisionRadius: DefaultCollisionRadius,
		FixedDeltaTime:  DefaultFixedDeltaTime,
		Iterations:      constraint.DefaultIterations,
		Tolerance:       constraint.DefaultTolerance,
	}
}

// Validate checks the settings ranges
func (s Settings) Validate() error {
	switch {
	case s.AirFriction < 0 || s.AirFriction > 1:
		return fmt.Errorf("%w: air friction %v not in [0, 1]", ErrInvalidSettings, s.AirFriction)
	case s.CollisionRadius < 0:
		return fmt.Errorf("%w: negative collision radius %v", ErrInvalidSettings, s.CollisionRadius)
	case !(s.FixedDeltaTime > 0):
		return fmt.Errorf("%w: fixed delta time %v must be positive", ErrInvalidSettings, s.FixedDeltaTime)
	case s.Iterations < 0:
		return fmt.Errorf("%w: negative iteration count %d", ErrInvalidSettings, s.Iterations)
	case s.Tolerance < 0:
		return fmt.Errorf("%w: negative tolerance %v", ErrInvalidSettings, s.Tolerance)
	}

	return nil
}

// Particle is one mass point of the rope.
// Velocity is implicit: Position - PreviousPosition.
type Particle struct {
	Position         mgl64.Vec3
	PreviousPosition mgl64.Vec3
	Acceleration     mgl64.Vec3
}

// Rope owns its particles, index 0 being the anchor end.
// A Rope is not safe for concurrent use.
type Rope struct {
	particles  []Particle
	positions  []mgl64.Vec3
	restLength float64
	link       constraint.Distance
	settings   Settings
	query      CollisionQuery
	handles    []Handle
}

// NewRope creates a rope of resolution particles hanging straight down from
// anchor, at rest. query may be nil when there is nothing to collide with.
func NewRope(resolution int, restLength float64, anchor mgl64.Vec3, settings Settings, query CollisionQuery) (*Rope, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	if !(restLength > 0) || math.IsInf(restLength, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLength, restLength)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	segment := restLength / float64(resolution)
	r := &Rope{
		particles:  make([]Particle, resolution),
		positions:  make([]mgl64.Vec3, resolution),
		restLength: restLength,
		link:       constraint.Distance{RestLength: segment, Tolerance: settings.Tolerance},
		settings:   settings,
		query:      query,
	}

	for i := range r.particles {
		p := &r.particles[i]
		p.Position = anchor.Add(mgl64.Vec3{0, -float64(i) * segment, 0})
		p.PreviousPosition = p.Position
		if i > 0 {
			p.Acceleration = settings.Gravity
		}
	}

	return r, nil
}

// UpdatePhysics advances the rope by one step of deltaTime seconds, with the
// first particle moved to anchor.
func (r *Rope) UpdatePhysics(anchor mgl64.Vec3, deltaTime float64) {
	if len(r.particles) == 0 {
		return
	}

	// update first particle by input, its motion becomes an acceleration
	fp := &r.particles[0]
	fp.PreviousPosition = fp.Position
	fp.Position = anchor
	fp.Acceleration = fp.Position.Sub(fp.PreviousPosition).Mul(1.0 / r.settings.FixedDeltaTime)

	r.integrate(deltaTime)
	r.relax()
}

// integrate moves the free particles with damped Verlet, then resolves
// their collisions. Particles do not interact here.
func (r *Rope) integrate(deltaTime float64) {
	sqrTime := deltaTime * deltaTime
	damping := 1 - r.settings.AirFriction

	for i := 1; i < len(r.particles); i++ {
		p := &r.particles[i]
		velocity := p.Position.Sub(p.PreviousPosition).Mul(damping)

		next := p.Position.Add(velocity).Add(p.Acceleration.Mul(sqrTime))
		p.PreviousPosition = p.Position
		p.Position, r.handles = Correct(r.query, p.PreviousPosition, next, r.settings.CollisionRadius, r.handles)
	}
}

// relax runs the alternating forward and backward sweeps over all segments
func (r *Rope) relax() {
	last := len(r.particles) - 1

	for j := 0; j < r.settings.Iterations; j++ {
		if j%2 == 0 {
			for i := 0; i < last; i++ {
				r.relaxSegment(i)
			}
		} else {
			for i := last - 1; i >= 0; i-- {
				r.relaxSegment(i)
			}
		}
	}
}

// relaxSegment corrects the segment between particles i and i+1.
// The anchor is only ever moved by UpdatePhysics.
func (r *Rope) relaxSegment(i int) {
	wa, wb := constraint.Weights(i == 0, false)
	r.link.Relax(&r.particles[i].Position, &r.particles[i+1].Position, wa, wb)
}

// Positions returns the particle positions in index order, anchor first.
// The slice is reused by the next call.
func (r *Rope) Positions() []mgl64.Vec3 {
	for i := range r.particles {
		r.positions[i] = r.particles[i].Position
	}

	return r.positions
}

// Particles returns a copy of the particle states
func (r *Rope) Particles() []Particle {
	out := make([]Particle, len(r.particles))
	copy(out, r.particles)

	return out
}

func (r *Rope) Resolution() int {
	return len(r.particles)
}

func (r *Rope) RestLength() float64 {
	return r.restLength
}

// SegmentLength is the rest distance between adjacent particles
func (r *Rope) SegmentLength() float64 {
	return r.link.RestLength
}

func (r *Rope) Settings() Settings {
	return r.settings
}

// Anchor returns the current position of the first particle
func (r *Rope) Anchor() mgl64.Vec3 {
	return r.particles[0].Position
}

// RestSpan is the polyline length at rest. It is one segment shorter than
// RestLength, as resolution particles only form resolution-1 segments.
func (r *Rope) RestSpan() float64 {
	return float64(len(r.particles)-1) * r.link.RestLength
}

// Length returns the current length of the polyline through the particles,
// to be compared with RestSpan
func (r *Rope) Length() float64 {
	var length float64
	for i := 0; i+1 < len(r.particles); i++ {
		length += r.particles[i+1].Position.Sub(r.particles[i].Position).Len()
	}

	return length
}

// MaxStretch returns the largest absolute segment length error
func (r *Rope) MaxStretch() float64 {
	var worst float64
	for i := 0; i+1 < len(r.particles); i++ {
		worst = math.Max(worst, math.Abs(r.link.Error(r.particles[i].Position, r.particles[i+1].Position)))
	}

	return worst
}
