package event

import "reflect"

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
)

func init() {
	RegisterType("goal_scored", EventGoalScored, &GoalPayload{})
	RegisterType("kickoff", EventKickoff, &KickoffPayload{})
	RegisterType("bounce", EventBounce, &BouncePayload{})
	RegisterType("extra_ball", EventExtraBall, &KickoffPayload{})
	RegisterType("match_start", EventMatchStart, &MatchPayload{})
	RegisterType("match_end", EventMatchEnd, &MatchPayload{})
	RegisterType("controller_associated", EventControllerAssociated, &ControllerPayload{})
	RegisterType("controller_lost", EventControllerLost, &ControllerPayload{})
}

// RegisterType maps a name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil if the event has none
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType registered under name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the registered name of et, empty if unknown
func GetEventName(et EventType) string {
	return typeToName[et]
}

// NewPayloadStruct returns a pointer to a zero payload for the event type, nil if none is registered
func NewPayloadStruct(et EventType) any {
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}
