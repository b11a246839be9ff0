package parameter

import "time"

// Bar layout
const (
	// BarSeparation is the horizontal distance between bar columns, in pixels
	BarSeparation = FieldWidth / NumBars

	// BarOffsetY lifts the bar column center slightly below the display center
	BarOffsetY = 2.0
)

// Goal animation
const (
	GoalAnimationSteps = 10
	GoalAnimationTTL   = 3000 * time.Millisecond

	// GoalAnimationMinTTL is the floor applied to a configured animation lifetime
	GoalAnimationMinTTL = 500 * time.Millisecond

	// GoalAnimationShrink is the tail of the lifetime during which the banner halves every frame
	GoalAnimationShrink = 300 * time.Millisecond

	GoalBannerWidth  = 420.0
	GoalBannerHeight = 140.0
)

// Match timer
const (
	TimerX = 400.0
	TimerY = 100.0

	// TimerLastMinute keeps the timer visible once less than this remains
	TimerLastMinute = time.Minute

	// TimerMinuteFlash is how long the timer shows at the top of every minute
	TimerMinuteFlash = 5 * time.Second
)

// Text metrics used for actor bounds
const (
	CharWidth  = 14.0
	LineHeight = 26.0
)

// Spectators
const (
	SpectatorX = 480.0
	SpectatorY = 45.0

	SpectatorSize   = 64.0
	SpectatorFrames = 8

	// SpectatorRate is the number of ticks between animation frames
	SpectatorRate = 1

	SpectatorLoopDelay     = 1000 * time.Millisecond
	SpectatorCyclesPerLoop = 4
)
