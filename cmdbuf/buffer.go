// Package cmdbuf implements the per-actor input jitter buffer: a queue of
// SimCommand keyed by FrameId that absorbs network jitter, reorder, and
// loss in a remote client's input stream without ever stalling the
// simulation.
package cmdbuf

// FrameId is a signed, monotonic simulation tick counter. Zero is the
// conventional start frame and also the reserved "invalid" sentinel.
type FrameId = int32

// SimCommand is one tick's worth of input from an actor. The zero value
// is the canonical default (no buttons held).
type SimCommand struct {
	Buttons uint32
}

// SimInput is the (previous, current) command pair delivered to the
// world for one actor on one frame.
type SimInput struct {
	Previous SimCommand
	Current  SimCommand
}

// Buffer is the jitter buffer for a single actor. The zero value is not
// usable; construct with New.
//
// Buffer always holds at least one command: a "last known" sentinel used
// to synthesize previous/current pairs when no new input has arrived.
type Buffer struct {
	data         []SimCommand
	mostRecent   FrameId
	lastConsumed FrameId

	// MaxFramesAhead bounds how far AddCommands is allowed to run ahead
	// of LastConsumed before older not-yet-consumed frames are dropped
	// from the front (keeping the newest MaxFramesAhead). Zero (the
	// default) means unbounded: a cap is opt-in.
	MaxFramesAhead int32
}

// New constructs a Buffer whose single sentinel slot is the default
// SimCommand, seeded so that the next consume advances from lastFrame.
func New(lastFrame FrameId) *Buffer {
	return &Buffer{
		data:         []SimCommand{{}},
		mostRecent:   lastFrame,
		lastConsumed: lastFrame - 1,
	}
}

// Len reports how many commands the buffer currently holds (always >=1).
func (b *Buffer) Len() int {
	return len(b.data)
}

// MostRecent returns the FrameId of the newest command held.
func (b *Buffer) MostRecent() FrameId {
	return b.mostRecent
}

// LastConsumed returns the FrameId just before the one held in the front
// (sentinel) slot. Once ConsumeCommand has advanced, the front slot holds
// the command it last returned as "current", so LastConsumed is one less
// than that command's frame.
func (b *Buffer) LastConsumed() FrameId {
	return b.lastConsumed
}

// AddCommands admits a batch whose final element is labeled mostRecent;
// the batch is taken to cover the contiguous range
// [mostRecent-len(commands)+1, mostRecent].
//
// Frames before the batch's range but still within the buffer are left
// untouched. Frames within [b.mostRecent+1, leastRecent-1] (a forward
// gap) are filled by replicating the buffer's current newest command, so
// the simulation never stalls waiting on a frame that hasn't arrived
// yet. Frames in [max(lastConsumed+1, leastRecent), b.mostRecent] are
// overwritten with the authoritative values from commands, correcting
// any earlier gap-fill guess. Frames at or before lastConsumed are
// silently dropped: they were already handed to the world and cannot be
// revised. Frames after b.mostRecent are appended.
func (b *Buffer) AddCommands(commands []SimCommand, mostRecent FrameId) {
	if len(commands) == 0 {
		return
	}
	leastRecent := mostRecent - FrameId(len(commands)-1)
	lastReceived := b.data[len(b.data)-1]

	// 1. gap fill forward: replicate the newest stored command into any
	// frames between what we have and what this batch starts at.
	for b.mostRecent+1 < leastRecent {
		b.data = append(b.data, lastReceived)
		b.mostRecent++
	}

	// 2. overlap overwrite: frames already buffered (gap-filled or
	// previously received) that this batch also covers get the
	// authoritative value. Frames at/before lastConsumed are skipped
	// since they've already been applied to the world.
	oldestAccepted := leastRecent
	if b.lastConsumed+1 > oldestAccepted {
		oldestAccepted = b.lastConsumed + 1
	}
	// A batch can only overwrite frames it actually carries: clamp to
	// mostRecent so a stale/short batch arriving after a newer one
	// leaves frames beyond its own coverage untouched instead of
	// indexing past the end of commands (this is what keeps out-of-order
	// arrival idempotent, per the buffer's contract).
	overlapEnd := b.mostRecent
	if mostRecent < overlapEnd {
		overlapEnd = mostRecent
	}
	for frame := oldestAccepted; frame <= overlapEnd; frame++ {
		readIndex := frame - leastRecent
		peekIndex := frame - (b.lastConsumed + 1)
		b.data[peekIndex] = commands[readIndex]
	}

	// 3. append new: anything past our current horizon extends it.
	for next := b.mostRecent + 1; next <= mostRecent; next++ {
		index := next - leastRecent
		b.data = append(b.data, commands[index])
		b.mostRecent = next
	}

	b.enforceDepthCap()
}

// ConsumeCommand returns the next (previous, current) pair for the
// simulation tick and advances LastConsumed by one frame. When no
// command beyond the sentinel has been received, it repeats the
// sentinel forever without advancing LastConsumed, so the world keeps
// stepping at the fixed tick rate even when a client has gone silent.
func (b *Buffer) ConsumeCommand() SimInput {
	if len(b.data) == 1 {
		return SimInput{Previous: b.data[0], Current: b.data[0]}
	}

	result := SimInput{Previous: b.data[0], Current: b.data[1]}
	b.data = b.data[1:]
	b.lastConsumed++
	return result
}

// enforceDepthCap drops the oldest held frames from the front (the
// sentinel slot first, the next slot then taking its place) when
// MaxFramesAhead is configured and exceeded,
// preferring to keep the newest input over stale input the simulation
// hasn't caught up to yet.
func (b *Buffer) enforceDepthCap() {
	if b.MaxFramesAhead <= 0 {
		return
	}
	for b.mostRecent-b.lastConsumed > b.MaxFramesAhead && len(b.data) > 1 {
		b.data = b.data[1:]
		b.lastConsumed++
	}
}
