package rope

import (
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// AnchorFunc returns where a rope's anchor should be for the coming step
type AnchorFunc func() mgl64.Vec3

// StaticAnchor returns an AnchorFunc that never moves
func StaticAnchor(position mgl64.Vec3) AnchorFunc {
	return func() mgl64.Vec3 { return position }
}

type attachment struct {
	rope   *Rope
	anchor AnchorFunc
	target mgl64.Vec3
}

// World steps several ropes against a shared scene
type World struct {
	Scene *Scene
	// Workers is the number of goroutines ropes are spread over
	Workers int

	attachments []*attachment
}

// NewWorld creates a world colliding against scene, which may be nil
func NewWorld(scene *Scene) *World {
	return &World{Scene: scene, Workers: DEFAULT_WORKERS}
}

// Query returns the collision service ropes of this world should be built with
func (w *World) Query() CollisionQuery {
	if w.Scene == nil {
		return nil
	}

	return w.Scene
}

// AddRope attaches a rope to the world, driven by anchor
func (w *World) AddRope(rope *Rope, anchor AnchorFunc) {
	w.attachments = append(w.attachments, &attachment{rope: rope, anchor: anchor})
}

// RemoveRope detaches a rope from the world
func (w *World) RemoveRope(rope *Rope) {
	k := -1
	for i, a := range w.attachments {
		if a.rope == rope {
			k = i
			break
		}
	}

	if k != -1 {
		w.attachments = append(w.attachments[:k], w.attachments[k+1:]...)
	}
}

// Ropes returns the attached ropes in insertion order
func (w *World) Ropes() []*Rope {
	ropes := make([]*Rope, len(w.attachments))
	for i, a := range w.attachments {
		ropes[i] = a.rope
	}

	return ropes
}

// Step advances every rope by dt.
// Anchors are sampled on the calling goroutine, then ropes are stepped in
// parallel; the scene is only read while they run.
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	for _, a := range w.attachments {
		a.target = a.anchor()
	}
	if w.Scene != nil {
		w.Scene.Prepare()
	}

	task(w.Workers, w.attachments, func(a *attachment) {
		a.rope.UpdatePhysics(a.target, dt)
	})
}
