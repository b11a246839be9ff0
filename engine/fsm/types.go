package fsm

import (
	"time"

	"github.com/lixenwraith/tuzbolin/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// TriggerTick names the automatic transition evaluated on every Update
const TriggerTick = "Tick"

// Machine is the generic hierarchical finite state machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after load
	nodes map[StateID]*Node[T]

	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID // Root -> ... -> leaf

	// OnTransition is called after every completed transition
	OnTransition func(from, to string)

	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	OnTick   bool            // evaluated on Update instead of HandleEvent
	Event    event.EventType // ignored when OnTick
	Guard    GuardFunc[T]    // nil = always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)
