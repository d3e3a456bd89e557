// Package router parses a single UDP datagram (opcode byte + bit-packed
// payload) and dispatches it into a sim.Simulation. Malformed datagrams
// are dropped silently: the CORE never panics on peer input.
package router

import (
	"log"

	"github.com/kstasik/netcode/actorid"
	"github.com/kstasik/netcode/bitio"
	"github.com/kstasik/netcode/cmdbuf"
	"github.com/kstasik/netcode/nametab"
	"github.com/kstasik/netcode/sim"
)

// Opcode identifies the message kind carried by the first byte of a
// datagram.
type Opcode byte

const (
	// OpActorJoin's payload is a single u16 name reference.
	OpActorJoin Opcode = 0
	// OpActorLeave's payload is a non-zero i16 actor id.
	OpActorLeave Opcode = 1
	// OpInputBatch's payload is actor id, most-recent FrameId, a u8
	// count, then count SimCommands.
	OpInputBatch Opcode = 2
)

// MaxDatagramSize is the largest datagram this router accepts; the
// transport's PacketSource is responsible for dropping anything larger
// before it reaches Read.
const MaxDatagramSize = 1500

// commandBits is the wire width of a SimCommand's button field.
const commandBits = 32

// maxBatchCount bounds how many commands a single input_batch message
// may carry, derived from MaxDatagramSize so a corrupt count field can't
// make Router allocate an unbounded slice.
const maxBatchCount = (MaxDatagramSize - 1 - 7) * 8 / commandBits

// Router dispatches decoded datagrams into a Simulation.
type Router struct {
	sim    *sim.Simulation
	logger *log.Logger
}

// New returns a Router that dispatches into s, logging dropped packets
// to logger (s.Logger() if logger is nil).
func New(s *sim.Simulation, logger *log.Logger) *Router {
	if logger == nil {
		logger = s.Logger()
	}
	return &Router{sim: s, logger: logger}
}

// Read parses one datagram and dispatches it. currentFrame is the frame
// to stamp a newly joined actor with (the simulation's current head).
func (r *Router) Read(buffer []byte, currentFrame cmdbuf.FrameId) {
	if len(buffer) == 0 {
		return
	}
	if len(buffer) > MaxDatagramSize {
		r.logf("dropping oversize datagram: %d bytes", len(buffer))
		return
	}

	op := Opcode(buffer[0])
	body := bitio.NewReader(buffer[1:])

	switch op {
	case OpActorJoin:
		r.readActorJoin(body, currentFrame)
	case OpActorLeave:
		r.readActorLeave(body)
	case OpInputBatch:
		r.readInputBatch(body)
	default:
		r.logf("dropping datagram with unknown opcode %d", op)
	}
}

func (r *Router) readActorJoin(body *bitio.Reader, currentFrame cmdbuf.FrameId) {
	nameRef, err := body.ReadBits(16)
	if err != nil {
		r.logf("actor_join: truncated payload: %v", err)
		return
	}
	name, ok := r.sim.Names().Resolve(nametab.Ref(nameRef))
	if !ok {
		r.logf("actor_join: unknown name reference %d", nameRef)
		return
	}
	if _, ok := r.sim.AddActor(currentFrame, name); !ok {
		r.logf("actor_join: dropped, name=%#x: registry at capacity", r.sim.Names().LogKey(name))
	}
}

func (r *Router) readActorLeave(body *bitio.Reader) {
	rawID, err := body.ReadBits(16)
	if err != nil {
		r.logf("actor_leave: truncated payload: %v", err)
		return
	}
	id := actorid.ID(int16(rawID))
	if id == 0 {
		r.logf("actor_leave: reserved zero actor id")
		return
	}
	r.sim.RemoveActor(id)
}

func (r *Router) readInputBatch(body *bitio.Reader) {
	rawID, err := body.ReadBits(16)
	if err != nil {
		r.logf("input_batch: truncated actor id: %v", err)
		return
	}
	id := actorid.ID(int16(rawID))
	if id == 0 {
		r.logf("input_batch: reserved zero actor id")
		return
	}

	rawFrame, err := body.ReadBits(32)
	if err != nil {
		r.logf("input_batch: truncated most_recent frame: %v", err)
		return
	}
	mostRecent := cmdbuf.FrameId(int32(rawFrame))

	count, err := body.ReadBits(8)
	if err != nil {
		r.logf("input_batch: truncated count: %v", err)
		return
	}
	if count == 0 || int(count) > maxBatchCount {
		r.logf("input_batch: implausible command count %d", count)
		return
	}

	commands := make([]cmdbuf.SimCommand, count)
	for i := range commands {
		buttons, err := body.ReadBits(commandBits)
		if err != nil {
			r.logf("input_batch: truncated command %d/%d: %v", i, count, err)
			return
		}
		commands[i] = cmdbuf.SimCommand{Buttons: buttons}
	}

	if !r.sim.FindActor(id) {
		// the actor may have already left; a late batch for it is
		// stale, not malformed.
		return
	}
	r.sim.AddCommands(id, commands, mostRecent)
}

func (r *Router) logf(format string, args ...interface{}) {
	if r.logger != nil {
		args = append([]interface{}{r.sim.SessionID}, args...)
		r.logger.Printf("session %s: router: "+format, args...)
	}
}
