package event

import (
	"sync/atomic"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// EventQueue is a fixed ring of game events with many producers and a single consumer
// Actors emit during the tick and association changes may come from other goroutines;
// the game loop drains once per tick. A full ring overwrites its oldest pending events
// and counts them as lost
type EventQueue struct {
	slots [parameter.EventQueueSize]slot
	head  atomic.Uint64 // next sequence to drain
	tail  atomic.Uint64 // next sequence to claim
	lost  atomic.Uint64
}

type slot struct {
	ev    GameEvent
	ready atomic.Bool // set once ev is fully written
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Emit pushes an event with its payload
func (q *EventQueue) Emit(t EventType, payload any) {
	q.Push(GameEvent{Type: t, Payload: payload})
}

// Push claims the next sequence and publishes ev in its slot
func (q *EventQueue) Push(ev GameEvent) {
	seq := q.tail.Add(1) - 1
	s := &q.slots[seq&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Drag head past the slots this write lapped
	floor := seq + 1 - min(seq+1, parameter.EventQueueSize)
	for {
		head := q.head.Load()
		if head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			q.lost.Add(floor - head)
			return
		}
	}
}

// Drain appends the pending events to buf in FIFO order and returns the extended slice
// A slot still being written ends the batch; it is picked up by the next drain
func (q *EventQueue) Drain(buf []GameEvent) []GameEvent {
	start := len(buf)
	for {
		head, tail := q.head.Load(), q.tail.Load()
		from := max(head, tail-min(tail, parameter.EventQueueSize))

		next := from
		for ; next < tail; next++ {
			s := &q.slots[next&parameter.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			buf = append(buf, s.ev)
		}

		if q.head.CompareAndSwap(head, next) {
			for seq := from; seq < next; seq++ {
				q.slots[seq&parameter.EventBufferMask].ready.Store(false)
			}
			return buf
		}
		buf = buf[:start]
	}
}

// Pending is the approximate number of undrained events
func (q *EventQueue) Pending() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Lost is the number of events overwritten before they were drained
func (q *EventQueue) Lost() uint64 { return q.lost.Load() }
