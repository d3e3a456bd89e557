// Package actorid maps the sparse, caller-facing ActorId space onto a
// dense, swap-removable index space used by the parallel vectors in
// tickctl and world.
package actorid

import "golang.org/x/exp/slices"

// ID identifies an actor for its whole lifetime. Zero is reserved as an
// invalid sentinel; ids are issued strictly increasing and are never
// reused while the generator has headroom.
type ID int16

// Index is a dense, 0-based position into the parallel vectors (command
// buffers, actor info) that mirror a Registry. It is invalidated by
// removals other than its own: see Remove.
type Index int

// Registry tracks the live set of actor ids, handing out dense indices
// and swap-removing on departure the way a fixed-capacity slot table
// does.
type Registry struct {
	ids       []ID
	generator int16
	capacity  int16
}

// New preallocates a Registry for up to capacity concurrent actors.
func New(capacity int16) *Registry {
	return &Registry{
		ids:      make([]ID, 0, capacity),
		capacity: capacity,
	}
}

// Count returns the number of live actors.
func (r *Registry) Count() int16 {
	return int16(len(r.ids))
}

// FindIndex returns the dense index currently holding id, if any.
func (r *Registry) FindIndex(id ID) (Index, bool) {
	for i, v := range r.ids {
		if v == id {
			return Index(i), true
		}
	}
	return 0, false
}

// Add allocates a new id and appends it to the dense table, returning
// the (id, index) pair. It returns ok=false without mutating the
// registry when capacity is already exhausted.
func (r *Registry) Add() (id ID, index Index, ok bool) {
	if len(r.ids) == int(r.capacity) {
		return 0, 0, false
	}

	for {
		r.generator++
		if ID(r.generator) != 0 {
			break
		}
		// wrapped past int16 range back onto the reserved zero id; keep
		// incrementing past it (Go wraps int16 arithmetic the same way
		// the Rust generator skips zero on overflow).
	}

	newID := ID(r.generator)
	r.ids = append(r.ids, newID)
	return newID, Index(len(r.ids) - 1), true
}

// Remove swap-removes id from the dense table and returns the index that
// was vacated, so callers mirroring this table (tickctl, world) can
// perform the matching swap-remove at the same index.
func (r *Registry) Remove(id ID) (Index, bool) {
	idx, ok := r.FindIndex(id)
	if !ok {
		return 0, false
	}
	last := len(r.ids) - 1
	r.ids[idx] = r.ids[last]
	r.ids = slices.Delete(r.ids, last, last+1)
	return idx, true
}
