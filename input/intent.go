package input

// SystemIntent is a game-wide action bound to a terminal key
type SystemIntent uint8

const (
	IntentNone SystemIntent = iota
	IntentQuit
	IntentKickoff   // reset every ball to the center
	IntentExtraBall // spawn one more ball
	IntentFPSUp
	IntentFPSDown
)

func (i SystemIntent) String() string {
	switch i {
	case IntentQuit:
		return "quit"
	case IntentKickoff:
		return "kickoff"
	case IntentExtraBall:
		return "extra_ball"
	case IntentFPSUp:
		return "fps_up"
	case IntentFPSDown:
		return "fps_down"
	}
	return "none"
}
