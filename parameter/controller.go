package parameter

import "time"

// Keyboard
const (
	KeyRotateStep = 0.1
	KeySlideStep  = 0.03

	// DefaultKeyHold is how long a terminal key press counts as held
	DefaultKeyHold = 300 * time.Millisecond

	// NumControllers is the total number of controllers; keyboards fill the slots motion controllers leave
	NumControllers = 4
)

// Motion controller sensor ranges
const (
	IRMaxX = 1024.0
	IRMaxY = 768.0

	// IRSlots is the number of blobs the IR camera reports
	IRSlots = 4
)

// Motion controller signal processing
const (
	// FlickThreshold is the frame-to-frame accelerometer delta read as a flick
	FlickThreshold = 1.5

	// StaleTicks is the number of frames after which IR data is stale
	StaleTicks = 10

	// CorrespondenceTolerance is the max relative change of the tracked IR distance
	CorrespondenceTolerance = 0.1

	// ExtentEpsilon avoids division by zero in extent normalization
	ExtentEpsilon = 0.001

	SlowSlideStep = 0.01
	FastSlideStep = 0.1

	// RecalibrationFrames is the countdown before multi-point ordering is locked
	RecalibrationFrames = 10

	// SubControllers is the number of point pairs tracked by one multi-point controller
	SubControllers = 2
)

// Bounce sound throttling
const BounceCooldown = 150 * time.Millisecond
