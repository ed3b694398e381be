// Package fsm provides a tiny tick-driven state machine suitable for use
// inside interrupt handlers: no allocation, no locking, no blocking. Time is
// carried as a wrapping 32-bit microsecond counter, matching the hardware
// cycle counters available on microcontroller targets.
package fsm

// Clock returns the current time as a wrapping microsecond counter.
type Clock func() uint32

// State is one state of a Machine, identified by an ID value.
type State[ID comparable] interface {
	// Tick consumes the microseconds elapsed since the machine's previous
	// tick and returns the ID of the next state. Transitions are total:
	// every elapsed value yields a valid ID, never an error.
	Tick(elapsed uint32) ID

	// OnEnterState is called once each time the machine transitions into
	// this state. It must establish the state's complete invariant without
	// assuming anything about prior state (reset counters explicitly,
	// reassert outputs rather than assuming their level).
	OnEnterState()
}

// Machine dispatches ticks to the current state and performs transitions.
// Lookup maps an ID to its state object and must be total; unknown IDs
// should resolve to the machine's initial state rather than misbehave.
type Machine[ID comparable] struct {
	lookup  func(ID) State[ID]
	clock   Clock
	current State[ID]
	id      ID
	last    uint32
}

// New returns a machine positioned in the initial state. The initial
// state's OnEnterState is not invoked; states that need their invariant
// established at rest should not rely on construction-time side effects.
func New[ID comparable](initial ID, lookup func(ID) State[ID], clock Clock) *Machine[ID] {
	return &Machine[ID]{
		lookup:  lookup,
		clock:   clock,
		current: lookup(initial),
		id:      initial,
		last:    clock(),
	}
}

// Tick advances the machine by one discrete event. It reads the clock,
// feeds the elapsed time to the current state, and transitions if the
// state asks for a different ID. The unsigned subtraction gives the
// correct elapsed time even when the counter has wrapped in between.
func (m *Machine[ID]) Tick() {
	now := m.clock()
	m.Set(m.current.Tick(now - m.last))
	m.last = now
}

// Set forces a transition to id, running its OnEnterState hook. A self
// transition is a no-op: no hook, no mutation.
func (m *Machine[ID]) Set(id ID) {
	if id == m.id {
		return
	}
	next := m.lookup(id)
	next.OnEnterState()
	m.current = next
	m.id = id
}

// Current returns the ID of the current state.
func (m *Machine[ID]) Current() ID {
	return m.id
}
