// Package world holds the authoritative simulation state stepped once
// per tick: the monotonic frame head, the actor table mirrored against
// actorid and tickctl, and a bounded table of in-world objects.
package world

import (
	"github.com/kstasik/netcode/actorid"
	"github.com/kstasik/netcode/cmdbuf"
)

// ObjectId is a monotonically increasing identifier scoped to a single
// World. It is never reused, even after the object it named is removed.
type ObjectId int64

type actorInfo struct {
	name string
}

// World owns the frame head, the dense actor table, and the object
// table. Application-specific state transitions belong to the host game;
// World.Step's only contractual behavior is advancing the head by
// exactly one and consuming inputs in actor-index order.
type World struct {
	head FrameID

	actors []actorInfo

	objects        map[ObjectId]struct{}
	objectCapacity int
	nextObjectID   ObjectId
}

// FrameID is the monotonic simulation tick counter (see cmdbuf.FrameId).
type FrameID = cmdbuf.FrameId

// New constructs a World starting at startFrame, preallocated for
// actorCapacity actors and bounded to objectCapacity live objects.
func New(startFrame FrameID, actorCapacity, objectCapacity int16) *World {
	return &World{
		head:           startFrame,
		actors:         make([]actorInfo, 0, actorCapacity),
		objects:        make(map[ObjectId]struct{}, objectCapacity),
		objectCapacity: int(objectCapacity),
	}
}

// Head returns the current frame head.
func (w *World) Head() FrameID {
	return w.head
}

// Step advances the frame head by exactly one and applies inputs in
// actor-index order. The actual game-state transition is left to the
// embedder: this CORE only guarantees ordering and the head advance.
func (w *World) Step(inputs []cmdbuf.SimInput) FrameID {
	w.head++
	// inputs[i] corresponds to actors[i]; the embedder's simulation-
	// specific step logic consumes inputs here, in index order.
	return w.head
}

// AddActor appends actor bookkeeping for name and returns its dense
// index, mirroring actorid.Registry.Add and tickctl.Control.AddActor.
func (w *World) AddActor(name string) actorid.Index {
	w.actors = append(w.actors, actorInfo{name: name})
	return actorid.Index(len(w.actors) - 1)
}

// RemoveActor swap-removes the actor at index.
func (w *World) RemoveActor(index actorid.Index) {
	last := len(w.actors) - 1
	w.actors[index] = w.actors[last]
	w.actors = w.actors[:last]
}

// AddObject allocates a new, never-reused ObjectId, or reports ok=false
// if the object table is already at its configured capacity.
func (w *World) AddObject() (id ObjectId, ok bool) {
	if len(w.objects) >= w.objectCapacity {
		return 0, false
	}
	w.nextObjectID++
	id = w.nextObjectID
	w.objects[id] = struct{}{}
	return id, true
}

// RemoveObject removes id from the object table, reporting whether it
// was present.
func (w *World) RemoveObject(id ObjectId) bool {
	if _, ok := w.objects[id]; !ok {
		return false
	}
	delete(w.objects, id)
	return true
}
