package input

import (
	"math"
	"time"

	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// MotionController fuses the accelerometer, IR camera and buttons of one handheld device
//
// Tilt drives rotation, a fast flick triggers a hard turn, and the distance between
// two IR sources drives the slide. The distance range is learned while playing
// unless the calibration buttons froze a bound.
type MotionController struct {
	link   deviceLink
	number int

	staleAfter  time.Duration
	calibration device.Calibration

	rot      float64
	slide    float64
	hardTurn float64

	lastAccX float64

	lastDistance float64
	lastExtent   float64
	lastIROK     time.Time
	skipTick     bool
	distMin      float64
	distMax      float64
	autoMin      bool
	autoMax      bool
	lastPoints   []*device.Blob
}

// NewMotionController drives bars from dev; number is the player number shown on the device LEDs
func NewMotionController(dev device.Device, number int, fps float64) *MotionController {
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	c := &MotionController{
		number:      number,
		staleAfter:  time.Duration(parameter.StaleTicks * float64(time.Second) / fps),
		calibration: device.DefaultCalibration,
		distMin:     parameter.IRMaxX,
		distMax:     1,
		autoMin:     true,
		autoMax:     true,
	}
	c.link = deviceLink{
		dev:     dev,
		mode:    device.ReportAcc | device.ReportButtons | device.ReportIR,
		onAssoc: c.setup,
	}
	return c
}

func (c *MotionController) setup() {
	c.calibration = c.link.dev.AccCalibration()
	if c.number > 0 {
		c.link.dev.SetLEDs(1 << (c.number - 1))
	}
}

func (c *MotionController) Associated() bool { return c.link.Associated() }
func (c *MotionController) Associate() bool  { return c.link.Associate() }

// Poll drains the device queue; an unassociated controller retries association instead
func (c *MotionController) Poll(now time.Time) {
	if !c.link.associated && !c.link.Associate() {
		return
	}
	for _, msg := range c.link.drain() {
		switch msg.Kind {
		case device.KindAcc:
			c.accControl(msg.Acc)
		case device.KindIR:
			c.irControl(msg.IR, now)
		case device.KindButtons:
			c.buttonControl(msg.Buttons)
		}
	}
}

func (c *MotionController) Control(bar Actuator) {
	if !c.link.associated {
		return
	}
	if c.hardTurn != 0 {
		bar.HardTurn(c.hardTurn)
	} else {
		bar.Rotate(c.rot)
	}
	bar.Slide(c.slide)
}

func (c *MotionController) relativeAcc(raw [3]float64, axis int) float64 {
	span := c.calibration.One[axis] - c.calibration.Zero[axis]
	if span == 0 {
		return 0
	}
	return (raw[axis] - c.calibration.Zero[axis]) / span
}

func (c *MotionController) accControl(raw [3]float64) {
	rx := c.relativeAcc(raw, device.AxisX)

	x := (rx + c.lastAccX) / 2
	d := c.lastAccX - rx
	if math.Abs(d) > parameter.FlickThreshold {
		c.hardTurn = d
	} else {
		c.hardTurn = 0
		c.rot = vmath.Clamp(x, -1, 1)
	}
	c.lastAccX = rx
}

// trackPoints picks the pair of IR sources whose distance is closest to the tracked one
// Returns nil pair when the closest candidate changed by more than the tolerance
func (c *MotionController) trackPoints(slots []*device.Blob, now time.Time) (*device.Blob, *device.Blob) {
	if now.Sub(c.lastIROK) > c.staleAfter {
		c.skipTick = true
		c.lastDistance = 0
		if c.autoMin {
			c.distMin = parameter.IRMaxX
		}
		if c.autoMax {
			c.distMax = 1
		}
		return slots[0], slots[1]
	}

	var best [2]*device.Blob
	bestDiff := parameter.IRMaxX
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			p1, p2 := slots[i], slots[j]
			if p1 == nil || p2 == nil {
				continue
			}
			d := vmath.Distance2D(p1.X, p1.Y, p2.X, p2.Y)
			if diff := math.Abs(c.lastDistance - d); diff < bestDiff {
				bestDiff = diff
				best = [2]*device.Blob{p1, p2}
			}
		}
	}

	if best[0] == nil || bestDiff > c.lastDistance*parameter.CorrespondenceTolerance {
		return nil, nil
	}
	return best[0], best[1]
}

func (c *MotionController) irControl(blobs []*device.Blob, now time.Time) {
	slots := normalizeSlots(blobs, parameter.IRSlots)
	c.lastPoints = slots

	p1, p2 := c.trackPoints(slots, now)
	if p1 == nil || p2 == nil {
		return
	}

	d := vmath.Distance2D(p1.X, p1.Y, p2.X, p2.Y)
	// One bound moves per frame
	if c.autoMin && d < c.distMin {
		c.distMin = d
	} else if c.autoMax && d > c.distMax {
		c.distMax = d
	}

	c.skipTick = c.lastDistance == 0
	extent := (d - c.distMin) / (c.distMax - c.distMin + parameter.ExtentEpsilon)
	c.lastDistance = d

	extent = (extent + c.lastExtent) / 2
	c.lastExtent = extent
	c.lastIROK = now

	if !c.skipTick {
		c.slide = vmath.Clamp(extent*2-1, -1, 1)
	}
}

func (c *MotionController) buttonControl(b device.Button) {
	speed := parameter.SlowSlideStep
	c.hardTurn = 0
	if b&device.ButtonA != 0 {
		c.hardTurn = 1
	}
	if b&device.ButtonB != 0 {
		speed = parameter.FastSlideStep
	}
	if b&device.ButtonTwo != 0 {
		c.distMin = c.lastDistance
		c.autoMin = false
	}
	if b&device.ButtonOne != 0 {
		c.distMax = c.lastDistance
		c.autoMax = false
	}
	if b&device.ButtonUp != 0 {
		c.slide = min(c.slide+speed, 1)
	}
	if b&device.ButtonDown != 0 {
		c.slide = max(c.slide-speed, -1)
	}
}

func (c *MotionController) Rotation() float64 { return c.rot }
func (c *MotionController) Slide() float64    { return c.slide }
func (c *MotionController) HardTurn() float64 { return c.hardTurn }

// Extent is the smoothed normalized IR distance
func (c *MotionController) Extent() float64 { return c.lastExtent }

// SkipTick reports whether the last IR read re-acquired tracking
func (c *MotionController) SkipTick() bool { return c.skipTick }

// DistanceRange returns the current min and max IR distance bounds
func (c *MotionController) DistanceRange() (float64, float64) { return c.distMin, c.distMax }

func (c *MotionController) LastPoints() []*device.Blob { return c.lastPoints }
