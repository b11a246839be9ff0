package parameter

// Display and field geometry, in pixels
const (
	DisplayWidth  = 1024.0
	DisplayHeight = 768.0

	FieldWidth  = 900.0
	FieldHeight = 550.0
	FieldLeft   = (DisplayWidth - FieldWidth) / 2
	FieldTop    = (DisplayHeight - FieldHeight) / 2

	GoalWidth  = 20.0
	GoalHeight = 100.0

	// PixelsPerUnit is the linear scale between pixel space and world units
	PixelsPerUnit = 170.0
)

// Bars
const (
	// NumBars is the number of penguin bars on the field, left to right
	NumBars = 8

	// MaxPenguinsPerBar is the most penguins that fit a bar without overlapping
	MaxPenguinsPerBar = 5

	// PenguinRadius is the collision sphere radius of a penguin, in pixels
	PenguinRadius = 14.0

	// BarHeight is the height of the rotation axis over the field plane, in world units
	BarHeight = 0.18

	// BarSpriteWidth is the width of the screen column reserved for a bar, in pixels
	BarSpriteWidth = 64.0

	// KeeperExtentFactor scales the goal height into the keeper slide extent
	KeeperExtentFactor = 1.5

	// SlideStopGap is the width of the slider stop window
	SlideStopGap = 0.01
)

// BarTeams assigns each bar slot to a team, left to right
var BarTeams = [NumBars]int{0, 0, 1, 0, 1, 0, 1, 1}

// DefaultPenguinsPerBar is the classic 1-2-3-5 line-up mirrored for both teams
var DefaultPenguinsPerBar = []int{1, 2, 3, 5, 5, 3, 2, 1}

// Balls
const (
	BallRadius      = 10.0
	ExtraBallRadius = 15.0
	BallDensity     = 800.0
)
