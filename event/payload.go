package event

// GoalPayload carries the scoring team and the score after the goal
type GoalPayload struct {
	Team  int
	Score [2]int
}

// KickoffPayload identifies the ball being kicked
type KickoffPayload struct {
	BallID uint64
}

// BouncePayload identifies the ball and the approach speed of the contact
type BouncePayload struct {
	BallID uint64
	Speed  float64
}

// MatchPayload describes the match that started or ended
type MatchPayload struct {
	MatchID string
	Score   [2]int
	Winner  int // -1 on a draw
}

// ControllerPayload identifies a controller slot
type ControllerPayload struct {
	Index   int
	Address string
}
