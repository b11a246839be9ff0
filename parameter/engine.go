package parameter

import "time"

// Game Loop & Engine Timing
const (
	// DefaultFPS is the desired frame rate when the configuration does not set one
	DefaultFPS = 26.0

	// FrameRateWindow is the number of recent frames averaged for the observed frame rate
	FrameRateWindow = 10

	// DeviceQueueSize is the capacity of the bounded channel between a device driver and the game loop
	DeviceQueueSize = 64

	// TerminalEventQueueSize is the capacity of the terminal input channel
	TerminalEventQueueSize = 256
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Match defaults
const (
	DefaultGoalTarget = 5
	DefaultMatchTime  = 3 * time.Minute
	DefaultWaitTime   = 10 * time.Second
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "tuzbolin.log"
	MaxLogSize  = 10 * 1024 * 1024
)

// TeamNames are shown on the end screen, indexed by team
var TeamNames = [2]string{"Purple", "Orange"}
