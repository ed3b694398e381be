package nec

import (
	"sync/atomic"

	"github.com/crowsley/irnec/fsm"
)

// StateID identifies one of the decoder's three states.
type StateID uint8

const (
	StateWaiting StateID = iota
	StateReceiving
	StateReceived
)

// Receiver is the narrow surface the consuming application polls, keeping
// it decoupled from the concrete decoder and pin binding.
type Receiver interface {
	// TryGetPacket returns a completed frame exactly once. It returns
	// false, without mutating anything, while no unread frame exists.
	TryGetPacket() (Packet, bool)

	// LastCode returns the code of the most recent non-repeat frame.
	// The value is stale until at least one non-repeat frame completes.
	LastCode() uint32
}

// Decoder reconstructs NEC frames from the stream of pin-edge events. Tick
// runs in the interrupt context; TryGetPacket and LastCode run in the
// polling context.
//
// The decoder does not buffer frames. Once a frame completes it stays in
// StateReceived, where every further edge is a no-op self-transition, so
// packet and lastCode are frozen until TryGetPacket consumes the frame and
// forces the machine back to StateWaiting. That freeze is the whole
// cross-context safety story: no field is ever written on one side while
// the other may touch it, gated by the single atomic ready flag. Frames
// that arrive while one is unread are dropped, not queued.
type Decoder struct {
	machine *fsm.Machine[StateID]

	// Shared across contexts: written only by the active state in the
	// interrupt context, read by the polling context while ready is true.
	packet   Packet
	lastCode uint32
	ready    atomic.Bool

	zeroW   fsm.Window
	oneW    fsm.Window
	repeatW fsm.Window
	leadW   fsm.Window
	bits    uint8

	waiting   waitingState
	receiving receivingState
	received  receivedState
}

// NewDecoder returns a decoder for the given timing profile. The clock is
// the wrapping microsecond counter used to measure edge intervals; pass
// irnec.Micros outside of tests.
func NewDecoder(t Timing, clock fsm.Clock) *Decoder {
	d := &Decoder{
		zeroW:   fsm.Window{Center: t.Zero, HalfWidth: t.HalfWidth},
		oneW:    fsm.Window{Center: t.One, HalfWidth: t.HalfWidth},
		repeatW: fsm.Window{Center: t.Repeat, HalfWidth: t.HalfWidth},
		leadW:   fsm.Window{Center: t.Lead, HalfWidth: t.HalfWidth},
		bits:    t.Bits,
	}
	d.waiting.d = d
	d.receiving.d = d
	d.received.d = d
	d.machine = fsm.New[StateID](StateWaiting, d.stateFor, clock)
	return d
}

// stateFor is total: identifiers that are not a known state resolve to the
// waiting state.
func (d *Decoder) stateFor(id StateID) fsm.State[StateID] {
	switch id {
	case StateReceiving:
		return &d.receiving
	case StateReceived:
		return &d.received
	default:
		return &d.waiting
	}
}

// Tick consumes one edge event. Call it from the pin interrupt handler;
// a Decoder satisfies irnec.Ticker.
func (d *Decoder) Tick() {
	d.machine.Tick()
}

// TryGetPacket implements Receiver. The packet fields are copied out
// before the machine is released back to StateWaiting and ready cleared;
// an edge arriving anywhere in between only self-transitions.
func (d *Decoder) TryGetPacket() (Packet, bool) {
	if !d.ready.Load() {
		return Packet{}, false
	}
	p := d.packet
	d.machine.Set(StateWaiting)
	d.ready.Store(false)
	return p, true
}

// LastCode implements Receiver.
func (d *Decoder) LastCode() uint32 {
	return d.lastCode
}

// waitingState waits for the interval that opens a frame: the lead gap of
// a full code, or the shorter repeat gap.
type waitingState struct {
	d *Decoder
}

func (s *waitingState) Tick(elapsed uint32) StateID {
	switch {
	case s.d.repeatW.Contains(elapsed):
		s.d.packet.IsRepeat = true
		return StateReceived
	case s.d.leadW.Contains(elapsed):
		return StateReceiving
	}
	return StateWaiting
}

func (s *waitingState) OnEnterState() {}

// receivingState accumulates code bits, most significant first. Any
// interval that is neither a zero nor a one abandons the frame.
type receivingState struct {
	d        *Decoder
	captured uint8
}

func (s *receivingState) Tick(elapsed uint32) StateID {
	switch {
	case s.d.zeroW.Contains(elapsed):
		s.d.packet.Code <<= 1
	case s.d.oneW.Contains(elapsed):
		s.d.packet.Code = s.d.packet.Code<<1 | 1
	default:
		return StateWaiting
	}
	s.captured++
	if s.captured == s.d.bits {
		return StateReceived
	}
	return StateReceiving
}

func (s *receivingState) OnEnterState() {
	s.d.packet.Code = 0
	s.d.packet.IsRepeat = false
	s.captured = 0
}

// receivedState holds a completed frame until the polling side consumes
// it. Every tick is a self-transition, which is what freezes the shared
// fields; the enter hook is the only writer of the ready flag's true value
// and runs exactly once per completed frame.
type receivedState struct {
	d *Decoder
}

func (s *receivedState) Tick(uint32) StateID {
	return StateReceived
}

func (s *receivedState) OnEnterState() {
	if !s.d.packet.IsRepeat {
		s.d.lastCode = s.d.packet.Code
	}
	s.d.ready.Store(true)
}
