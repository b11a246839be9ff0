package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/tuzbolin/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	if got := q.Drain(nil); got != nil {
		t.Fatalf("Expected nil from empty queue, got %v", got)
	}

	q.Emit(EventKickoff, &KickoffPayload{BallID: 1})
	q.Emit(EventGoalScored, &GoalPayload{Team: 1, Score: [2]int{0, 1}})
	q.Emit(EventBounce, nil)

	if q.Pending() != 3 {
		t.Errorf("Expected 3 pending, got %d", q.Pending())
	}

	events := q.Drain(nil)
	want := []EventType{EventKickoff, EventGoalScored, EventBounce}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i, ev := range events {
		if ev.Type != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], ev.Type)
		}
	}
	if p, ok := events[1].Payload.(*GoalPayload); !ok || p.Team != 1 {
		t.Errorf("Expected goal payload for team 1, got %#v", events[1].Payload)
	}
	if q.Pending() != 0 {
		t.Errorf("Expected empty queue after drain, got %d", q.Pending())
	}
}

func TestDrainAppendsToBuffer(t *testing.T) {
	q := NewEventQueue()
	buf := make([]GameEvent, 0, 8)

	q.Emit(EventKickoff, nil)
	buf = q.Drain(buf)
	q.Emit(EventBounce, nil)
	q.Emit(EventBounce, nil)
	buf = q.Drain(buf)

	if len(buf) != 3 || buf[0].Type != EventKickoff || buf[2].Type != EventBounce {
		t.Errorf("Expected kickoff then two bounces, got %v", buf)
	}
	if got := q.Drain(buf[:0]); len(got) != 0 {
		t.Errorf("Expected nothing left, got %d events", len(got))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := range total {
		q.Emit(EventBounce, &BouncePayload{BallID: uint64(i)})
	}

	events := q.Drain(nil)
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	first := events[0].Payload.(*BouncePayload).BallID
	if first != 10 {
		t.Errorf("Expected oldest surviving event 10, got %d", first)
	}
	if q.Lost() != 10 {
		t.Errorf("Expected 10 lost events, got %d", q.Lost())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := range 4 {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := range 16 {
				q.Emit(EventControllerAssociated, &ControllerPayload{Index: p*100 + i})
			}
		}(p)
	}
	wg.Wait()

	if got := len(q.Drain(nil)); got != 64 {
		t.Errorf("Expected 64 events, got %d", got)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventGoalScored.String() != "goal_scored" {
		t.Errorf("Expected goal_scored, got %s", EventGoalScored)
	}
	if EventType(999).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", EventType(999))
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	et, ok := GetEventType("match_end")
	if !ok || et != EventMatchEnd {
		t.Errorf("Expected match_end to resolve, got %v %v", et, ok)
	}
	if _, ok := GetEventType("Tick"); ok {
		t.Error("Expected Tick to be unregistered")
	}
	if _, ok := NewPayloadStruct(EventGoalScored).(*GoalPayload); !ok {
		t.Errorf("Expected *GoalPayload, got %T", NewPayloadStruct(EventGoalScored))
	}
}
