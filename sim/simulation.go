// Package sim composes actorid.Registry, world.World and tickctl.Control
// into the server-side simulation: every actor mutation updates all
// three in lockstep, and Update drains the tick accumulator into world
// steps, producing catch-up steps when the host call arrives late.
package sim

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kstasik/netcode/actorid"
	"github.com/kstasik/netcode/cmdbuf"
	"github.com/kstasik/netcode/nametab"
	"github.com/kstasik/netcode/tickctl"
	"github.com/kstasik/netcode/world"
)

// Simulation owns the actor registry, the authoritative world, and the
// tick accumulator for a single running server. It lives for the
// server's lifetime; a Simulation owns exactly one World.
type Simulation struct {
	// SessionID correlates this simulation's log lines the way
	// cmd/snellerd's handler_query.go attaches a uuid.New() queryID to a
	// request's log output.
	SessionID uuid.UUID

	logger *log.Logger

	ids     *actorid.Registry
	world   *world.World
	control *tickctl.Control
	names   nametab.Table
}

// Start constructs a running Simulation. logger may be nil, in which
// case log output is discarded.
func Start(startFrame cmdbuf.FrameId, frameDuration time.Duration, actorCapacity, objectCapacity int16, logger *log.Logger) *Simulation {
	if logger == nil {
		logger = log.New(discard{}, "", 0)
	}
	return &Simulation{
		SessionID: uuid.New(),
		logger:    logger,
		ids:       actorid.New(actorCapacity),
		world:     world.New(startFrame, actorCapacity, objectCapacity),
		control:   tickctl.New(actorCapacity, frameDuration),
	}
}

// Update drains the tick accumulator, stepping World once per elapsed
// frame duration (and, on a late host call, multiple times in a row:
// catch-up). delta is only charged to the accumulator on the first
// iteration, exactly as TickControl.update documents.
func (s *Simulation) Update(delta time.Duration) {
	stepTime := delta
	for {
		inputs, ok := s.control.Update(stepTime)
		if !ok {
			return
		}
		s.world.Step(inputs)
		stepTime = 0
	}
}

// AddActor allocates an actor id and, only on success, appends the
// matching entries to World and Control so all three tables stay in
// lockstep. If the registry is at capacity, nothing is mutated and ok is
// false.
func (s *Simulation) AddActor(currentFrame cmdbuf.FrameId, name string) (actorid.ID, bool) {
	id, _, ok := s.ids.Add()
	if !ok {
		s.logger.Printf("session %s: add_actor(%q) rejected: registry at capacity", s.SessionID, name)
		return 0, false
	}

	s.control.AddActor(currentFrame)
	s.world.AddActor(name)
	s.names.Intern(name)
	return id, true
}

// RemoveActor swap-removes id from all three tables if it's live.
func (s *Simulation) RemoveActor(id actorid.ID) {
	index, ok := s.ids.Remove(id)
	if !ok {
		return
	}
	s.control.RemoveActor(index)
	s.world.RemoveActor(index)
}

// AddCommands routes a decoded input_batch message to the actor's
// command buffer, if id is still live. Unknown ids are dropped silently,
// matching the "never panics on peer input" policy: a late-arriving
// batch for an actor that already left is stale, not an error.
func (s *Simulation) AddCommands(id actorid.ID, commands []cmdbuf.SimCommand, mostRecent cmdbuf.FrameId) {
	index, ok := s.ids.FindIndex(id)
	if !ok {
		return
	}
	s.control.AddCommands(index, commands, mostRecent)
}

// FindActor reports whether id currently names a live actor.
func (s *Simulation) FindActor(id actorid.ID) bool {
	_, ok := s.ids.FindIndex(id)
	return ok
}

// Names exposes the simulation's name table so router.Router can resolve
// actor_join's name reference without reaching into Simulation internals.
func (s *Simulation) Names() *nametab.Table {
	return &s.names
}

// Head returns the world's current frame head.
func (s *Simulation) Head() cmdbuf.FrameId {
	return s.world.Head()
}

// Logger returns the simulation's logger, for components (router) that
// share its session correlation id.
func (s *Simulation) Logger() *log.Logger {
	return s.logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
