// Package volume drives a motorised volume potentiometer from decoded NEC
// remote codes. It is a second client of the fsm framework, running in the
// polling context: a control loop calls Machine.Tick at a rate faster than
// the remote's repeat cadence (NEC repeats every ~108ms).
package volume

import (
	"github.com/crowsley/irnec/fsm"
	"github.com/crowsley/irnec/nec"
)

// Motor is the H-bridge the machine drives. tinygo.org/x/drivers/l293x
// satisfies it directly.
type Motor interface {
	Forward()
	Backward()
	Stop()
}

// StateID identifies one of the machine's four states.
type StateID uint8

const (
	StateIdle StateID = iota
	StateUp
	StateDown
	StateBraking
)

// Config holds the remote codes and timing of one machine. Durations are
// in microseconds, the unit the control loop's clock ticks in.
type Config struct {
	UpCode   uint32
	DownCode uint32
	// Timeout is how long the motor keeps moving without a matching
	// command or repeat before it brakes.
	Timeout uint32
	// BrakeTime is how long the machine stays in the braking state
	// before settling to idle.
	BrakeTime uint32
}

// DefaultConfig matches a common NEC audio remote's volume buttons.
var DefaultConfig = Config{
	UpCode:    0xFFA857,
	DownCode:  0xFFE01F,
	Timeout:   120_000,
	BrakeTime: 60_000,
}

// Machine polls a nec.Receiver and runs the motor accordingly: a volume
// code starts the motor, repeat packets keep it running, silence brakes it.
type Machine struct {
	machine *fsm.Machine[StateID]
	rx      nec.Receiver
	motor   Motor
	cfg     Config

	idle    idleState
	up      movingState
	down    movingState
	braking brakingState
}

// NewMachine wires a machine to a receiver and motor. The clock is the
// same wrapping microsecond counter the decoder uses (irnec.Micros).
func NewMachine(rx nec.Receiver, motor Motor, cfg Config, clock fsm.Clock) *Machine {
	m := &Machine{rx: rx, motor: motor, cfg: cfg}
	m.idle.m = m
	m.up = movingState{m: m, forwardCode: cfg.UpCode, reverseCode: cfg.DownCode, self: StateUp, reverse: StateDown, run: motor.Forward}
	m.down = movingState{m: m, forwardCode: cfg.DownCode, reverseCode: cfg.UpCode, self: StateDown, reverse: StateUp, run: motor.Backward}
	m.braking.m = m
	m.machine = fsm.New[StateID](StateIdle, m.stateFor, clock)
	return m
}

func (m *Machine) stateFor(id StateID) fsm.State[StateID] {
	switch id {
	case StateUp:
		return &m.up
	case StateDown:
		return &m.down
	case StateBraking:
		return &m.braking
	default:
		return &m.idle
	}
}

// Tick advances the machine. Call it from the control loop.
func (m *Machine) Tick() {
	m.machine.Tick()
}

// Current returns the machine's current state.
func (m *Machine) Current() StateID {
	return m.machine.Current()
}

type idleState struct {
	m *Machine
}

func (s *idleState) Tick(uint32) StateID {
	if p, ok := s.m.rx.TryGetPacket(); ok && !p.IsRepeat {
		switch p.Code {
		case s.m.cfg.UpCode:
			return StateUp
		case s.m.cfg.DownCode:
			return StateDown
		}
	}
	return StateIdle
}

func (s *idleState) OnEnterState() {
	s.m.motor.Stop()
}

// movingState covers both directions; forward is whichever way this
// instance was configured to run.
type movingState struct {
	m           *Machine
	forwardCode uint32
	reverseCode uint32
	self        StateID
	reverse     StateID
	run         func()

	sinceCommand uint32
}

func (s *movingState) Tick(elapsed uint32) StateID {
	if p, ok := s.m.rx.TryGetPacket(); ok {
		if p.IsRepeat || p.Code == s.forwardCode {
			s.sinceCommand = 0
		} else if p.Code == s.reverseCode {
			return s.reverse
		}
	} else {
		s.sinceCommand += elapsed
	}
	if s.sinceCommand > s.m.cfg.Timeout {
		return StateBraking
	}
	return s.self
}

func (s *movingState) OnEnterState() {
	s.sinceCommand = 0
	s.run()
}

type brakingState struct {
	m      *Machine
	braked uint32
}

func (s *brakingState) Tick(elapsed uint32) StateID {
	if _, ok := s.m.rx.TryGetPacket(); ok {
		// Restart from the last code rather than the packet, so a
		// repeat that arrived a little late (remote battery sag)
		// still resumes the previous direction.
		switch s.m.rx.LastCode() {
		case s.m.cfg.UpCode:
			return StateUp
		case s.m.cfg.DownCode:
			return StateDown
		}
	}
	s.braked += elapsed
	if s.braked >= s.m.cfg.BrakeTime {
		return StateIdle
	}
	return StateBraking
}

func (s *brakingState) OnEnterState() {
	s.braked = 0
	s.m.motor.Stop()
}
