package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/tuzbolin/event"
)

// NewMachine creates an empty machine; register guards and actions before LoadConfig
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}

// Update advances the machine by dt: leaf OnUpdate actions, then tick transitions bubbling up from the leaf
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt

	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)

	for currID := m.activeStateID; currID != StateNone; {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.OnTick && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return
			}
		}
		currID = node.ParentID
	}
}

// HandleEvent routes an event through the active path
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone {
		return false
	}

	for currID := m.activeStateID; currID != StateNone; {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if !trans.OnTick && trans.Event == eventType && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor and enters down to the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}
	from := m.nodes[m.activeStateID].Name

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	// State is switched before OnEnter so entry actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	if m.OnTransition != nil {
		m.OnTransition(from, targetNode.Name)
	}
}

// State returns the active leaf state name
func (m *Machine[T]) State() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns the time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration { return m.timeInState }
