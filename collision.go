package rope

import (
	"github.com/akmonengine/rope/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultCellSize = 1.0
	DefaultNumCells = 1024

	// degenerateDistance is the push length under which the push direction is undefined
	degenerateDistance = 1e-9
)

// Handle identifies a solid surface returned by a CollisionQuery
type Handle int

// CollisionQuery is the collision service a rope resolves its particles against
type CollisionQuery interface {
	// QueryNearby appends to dst the surfaces within radius of center
	QueryNearby(center mgl64.Vec3, radius float64, dst []Handle) []Handle
	// ClosestPoint returns the point of surface h closest to point
	ClosestPoint(h Handle, point mgl64.Vec3) mgl64.Vec3
}

// Correct pushes candidate out of the surfaces found around it, so that it
// ends at least radius away from each of them. Surfaces are processed in
// the order returned by the query and corrections accumulate; no global
// solve is attempted.
// previous is the position the particle moves from. When candidate sits
// exactly on a surface or inside a solid, the push starts from the surface
// point closest to previous instead.
// scratch is reused for the query and returned for the next call.
func Correct(query CollisionQuery, previous, candidate mgl64.Vec3, radius float64, scratch []Handle) (mgl64.Vec3, []Handle) {
	if query == nil {
		return candidate, scratch
	}

	scratch = query.QueryNearby(candidate, radius, scratch[:0])
	for _, h := range scratch {
		closest := query.ClosestPoint(h, candidate)

		offset := candidate.Sub(closest)
		distance := offset.Len()
		if distance >= radius {
			continue
		}
		if distance < degenerateDistance {
			// candidate is inside the solid: leave on the side it entered from
			closest = query.ClosestPoint(h, previous)
			offset = previous.Sub(closest)
			distance = offset.Len()
			if distance < degenerateDistance {
				continue
			}
		}

		// Push the particle out of the collider
		candidate = closest.Add(offset.Mul(radius / distance))
	}

	return candidate, scratch
}

// Scene is a CollisionQuery over static colliders, indexed in a SpatialGrid.
// A Scene must not be modified while ropes are being stepped against it.
type Scene struct {
	colliders []*actor.Collider
	unbounded []int
	grid      *SpatialGrid
	dirty     bool
	count     int
}

// NewScene creates an empty scene with the given grid resolution
func NewScene(cellSize float64, numCells int) *Scene {
	return &Scene{grid: NewSpatialGrid(cellSize, numCells)}
}

// Add registers a collider and returns its handle
func (s *Scene) Add(collider *actor.Collider) Handle {
	s.colliders = append(s.colliders, collider)
	s.dirty = true
	s.count++

	return Handle(len(s.colliders) - 1)
}

// Remove unregisters the collider. Other handles stay valid.
func (s *Scene) Remove(h Handle) {
	if !s.valid(h) {
		return
	}
	s.colliders[h] = nil
	s.dirty = true
	s.count--
}

// Move places the collider at a new transform
func (s *Scene) Move(h Handle, transform actor.Transform) {
	if !s.valid(h) {
		return
	}
	s.colliders[h].SetTransform(transform)
	s.dirty = true
}

// Collider returns the collider registered under h, nil if none
func (s *Scene) Collider(h Handle) *actor.Collider {
	if !s.valid(h) {
		return nil
	}

	return s.colliders[h]
}

// Len returns the number of registered colliders
func (s *Scene) Len() int {
	return s.count
}

// Prepare rebuilds the grid if colliders changed since the last build.
// After Prepare, queries only read the scene and may run concurrently.
func (s *Scene) Prepare() {
	if !s.dirty {
		return
	}

	s.grid.Clear()
	s.unbounded = s.unbounded[:0]
	for i, c := range s.colliders {
		if c == nil {
			continue
		}
		if c.IsUnbounded() {
			s.unbounded = append(s.unbounded, i)
			continue
		}
		s.grid.Insert(i, c.GetAABB())
	}
	s.dirty = false
}

// QueryNearby returns, in ascending handle order, the enabled colliders
// whose surface lies within radius of center
func (s *Scene) QueryNearby(center mgl64.Vec3, radius float64, dst []Handle) []Handle {
	s.Prepare()

	bounds := actor.AABBAround(center, radius)
	var candidates [16]int
	indices := s.grid.Query(bounds, candidates[:0])

	// Merge plane and grid hits, both sorted, to keep handle order
	ui, gi := 0, 0
	for ui < len(s.unbounded) || gi < len(indices) {
		var i int
		if gi >= len(indices) || (ui < len(s.unbounded) && s.unbounded[ui] < indices[gi]) {
			i = s.unbounded[ui]
			ui++
		} else {
			i = indices[gi]
			gi++
		}

		c := s.colliders[i]
		if c == nil || c.Disabled {
			continue
		}
		if !c.IsUnbounded() && !c.GetAABB().Overlaps(bounds) {
			continue
		}
		if c.Distance(center) > radius {
			continue
		}
		dst = append(dst, Handle(i))
	}

	return dst
}

// ClosestPoint returns the point of collider h closest to point.
// An unknown handle returns point itself.
func (s *Scene) ClosestPoint(h Handle, point mgl64.Vec3) mgl64.Vec3 {
	if !s.valid(h) {
		return point
	}

	return s.colliders[h].ClosestPoint(point)
}

func (s *Scene) valid(h Handle) bool {
	return h >= 0 && int(h) < len(s.colliders) && s.colliders[h] != nil
}
