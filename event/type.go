package event

// EventType represents the type of game event
type EventType int

const (
	// EventGoalScored fires when a ball enters a goal
	// Trigger: Ball update | Payload: *GoalPayload
	EventGoalScored EventType = iota

	// EventKickoff fires when a ball is reset to the center and kicked
	// Trigger: Ball kickoff | Payload: *KickoffPayload
	EventKickoff

	// EventBounce fires when a ball touches a penguin
	// Trigger: collision pass | Payload: *BouncePayload
	EventBounce

	// EventExtraBall fires when a new ball enters the field
	// Trigger: goal animation expiry, debug key | Payload: *KickoffPayload
	EventExtraBall

	// EventMatchStart fires on Waiting -> Playing and Ended -> Playing
	// Payload: *MatchPayload
	EventMatchStart

	// EventMatchEnd fires on Playing -> Ended
	// Payload: *MatchPayload
	EventMatchEnd

	// EventControllerAssociated fires when a device controller connects
	// Payload: *ControllerPayload
	EventControllerAssociated

	// EventControllerLost fires when a device reports a disconnect
	// Payload: *ControllerPayload
	EventControllerLost
)

func (t EventType) String() string {
	if name := GetEventName(t); name != "" {
		return name
	}
	return "unknown"
}

// GameEvent is a typed event with an optional payload
type GameEvent struct {
	Type    EventType
	Payload any
}
