// Package tickctl implements the fixed-rate tick accumulator: it turns a
// variable-rate host clock into a whole number of fixed-duration
// simulation steps, draining exactly one command per actor per step from
// that actor's cmdbuf.Buffer.
package tickctl

import (
	"time"

	"github.com/kstasik/netcode/actorid"
	"github.com/kstasik/netcode/cmdbuf"
)

// Control owns one cmdbuf.Buffer per live actor, indexed in lockstep
// with actorid.Registry and world.World.
type Control struct {
	frameDuration time.Duration
	accumulator   time.Duration
	buffers       []*cmdbuf.Buffer
}

// New seeds a Control with a zero accumulator for up to capacity actors
// ticking every frameDuration.
func New(capacity int16, frameDuration time.Duration) *Control {
	return &Control{
		frameDuration: frameDuration,
		buffers:       make([]*cmdbuf.Buffer, 0, capacity),
	}
}

// AddActor appends a new command buffer seeded at currentFrame and
// returns its dense index. The caller must ensure this index matches the
// index actorid.Registry.Add just returned for the same actor.
func (c *Control) AddActor(currentFrame cmdbuf.FrameId) actorid.Index {
	c.buffers = append(c.buffers, cmdbuf.New(currentFrame))
	return actorid.Index(len(c.buffers) - 1)
}

// RemoveActor swap-removes the buffer at index, mirroring
// actorid.Registry.Remove's vacated index.
func (c *Control) RemoveActor(index actorid.Index) {
	last := len(c.buffers) - 1
	c.buffers[index] = c.buffers[last]
	c.buffers = c.buffers[:last]
}

// AddCommands delegates to the command buffer at index.
func (c *Control) AddCommands(index actorid.Index, commands []cmdbuf.SimCommand, mostRecent cmdbuf.FrameId) {
	c.buffers[index].AddCommands(commands, mostRecent)
}

// Update adds delta to the accumulator. If the accumulator has reached a
// full frame duration, it subtracts one frameDuration and returns one
// SimInput per actor (in current index order), each drained from that
// actor's buffer. Otherwise it returns (nil, false).
//
// The caller drives catch-up by calling Update(0) repeatedly after the
// first non-zero delta until it returns false, so a late host tick
// produces multiple world steps instead of stalling the simulation
// clock.
func (c *Control) Update(delta time.Duration) ([]cmdbuf.SimInput, bool) {
	c.accumulator += delta
	if c.accumulator < c.frameDuration {
		return nil, false
	}
	c.accumulator -= c.frameDuration

	inputs := make([]cmdbuf.SimInput, len(c.buffers))
	for i, buf := range c.buffers {
		inputs[i] = buf.ConsumeCommand()
	}
	return inputs, true
}
