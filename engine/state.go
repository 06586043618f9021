package engine

// State is the engine lifecycle phase
type State int

const (
	// StateInit is entered once, before the first frame
	StateInit State = iota
	// StateRunning executes one actor pass per tick
	StateRunning
	// StatePreExit is the teardown tick between a quit request and Exit
	StatePreExit
	// StateExit stops the loop
	StateExit

	stateCount
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateRunning:
		return "Running"
	case StatePreExit:
		return "PreExit"
	case StateExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s ends the Running phase when requested by an actor
func (s State) Terminal() bool {
	return s != StateRunning
}

// StateMachine drives Init -> Running -> PreExit -> Exit
// Requests made during a frame are latched and applied by Advance at the frame boundary;
// the first request wins and later ones in the same frame are dropped
// Transitions never fail
type StateMachine struct {
	state State

	pending       bool
	pendingState  State
	pendingSource string

	visits [stateCount]int
}

// NewStateMachine creates a machine in StateInit
func NewStateMachine() *StateMachine {
	m := &StateMachine{state: StateInit}
	m.visits[StateInit] = 1
	return m
}

// State returns the current state
func (m *StateMachine) State() State {
	return m.state
}

// Latch records a transition request for the current frame
// Requests for StateRunning are no-ops; returns true only for the request that won the frame
func (m *StateMachine) Latch(req State, source string) bool {
	if !req.Terminal() || m.pending {
		return false
	}
	m.pending = true
	m.pendingState = req
	m.pendingSource = source
	return true
}

// Pending returns the latched request, if any
func (m *StateMachine) Pending() (req State, source string, ok bool) {
	return m.pendingState, m.pendingSource, m.pending
}

// Interrupt handles an external quit signal
// Init and Running move straight to PreExit so the current tick performs no actor pass
// Returns false when the machine is already shutting down
func (m *StateMachine) Interrupt() bool {
	if m.state != StateInit && m.state != StateRunning {
		return false
	}
	m.clearPending()
	m.enter(StatePreExit)
	return true
}

// Advance applies the transition for the current state and returns the new state
//
//	Init    -> Running, or PreExit when a request is latched
//	Running -> Running, or PreExit when a request is latched
//	PreExit -> Exit
//	Exit    -> Exit
//
// Running never jumps to Exit directly so the PreExit teardown always runs
func (m *StateMachine) Advance() State {
	var next State
	switch m.state {
	case StateInit, StateRunning:
		if m.pending {
			next = StatePreExit
		} else {
			next = StateRunning
		}
	default:
		next = StateExit
	}
	m.clearPending()

	if next != m.state {
		m.enter(next)
	}
	return m.state
}

// Visits returns how many times s has been entered
// Running self-loops count as a single visit
func (m *StateMachine) Visits(s State) int {
	if s < 0 || s >= stateCount {
		return 0
	}
	return m.visits[s]
}

func (m *StateMachine) enter(s State) {
	m.state = s
	m.visits[s]++
}

func (m *StateMachine) clearPending() {
	m.pending = false
	m.pendingState = StateRunning
	m.pendingSource = ""
}
