package input

import (
	"math"
	"time"

	"github.com/lixenwraith/tuzbolin/device"
	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// MultiPointController drives two groups of bars from one IR camera
// Slots 0-1 form the first point pair and slots 2-3 the second
type MultiPointController struct {
	link deviceLink

	sequence  []int
	autoCalib bool
	min, max  [parameter.SubControllers]float64

	slide      [parameter.SubControllers]float64
	rot        [parameter.SubControllers]float64
	lastExtent [parameter.SubControllers]float64

	calTimeout    int
	ordered       bool
	lastNumPoints int
	lastPoints    []*device.Blob

	bindings map[Actuator]int
	ledOn    bool
}

// NewMultiPointController creates a controller for dev
// sequence assigns bars to point pairs in binding order; empty balances the pairs.
// A non-nil calibration fixes the (min, max) distance and disables auto-calibration.
func NewMultiPointController(dev device.Device, sequence []int, calibration *[2]float64) *MultiPointController {
	c := &MultiPointController{
		sequence: sequence,
		bindings: make(map[Actuator]int),
	}
	if calibration != nil {
		for i := range c.min {
			c.min[i], c.max[i] = calibration[0], calibration[1]
		}
	} else {
		c.autoCalib = true
		c.resetCalibration()
	}
	c.link = deviceLink{dev: dev, mode: device.ReportIR}
	return c
}

func (c *MultiPointController) resetCalibration() {
	for i := range c.min {
		c.min[i], c.max[i] = parameter.IRMaxX, 0
	}
}

func (c *MultiPointController) Associated() bool { return c.link.Associated() }
func (c *MultiPointController) Associate() bool  { return c.link.Associate() }

// TrackedPoints is the number of visible points when ordering was last locked
func (c *MultiPointController) TrackedPoints() int { return c.lastNumPoints }

func (c *MultiPointController) LastPoints() []*device.Blob { return c.lastPoints }

func (c *MultiPointController) Poll(now time.Time) {
	if !c.link.associated && !c.link.Associate() {
		return
	}
	for _, msg := range c.link.drain() {
		if msg.Kind != device.KindIR {
			continue
		}
		slots := normalizeSlots(msg.IR, parameter.IRSlots)
		c.lastPoints = slots

		pairs, ok := c.pairs(slots)
		if !ok {
			continue
		}
		for i, pair := range pairs {
			if pair[0] == nil || pair[1] == nil {
				continue
			}
			c.slide[i] = c.extent(pair, i)
			c.rot[i] = angle(pair)
		}
	}
}

// pairs splits the slots into point pairs once their order is trusted
// Any change in the visible point count restarts a countdown; pairs are withheld
// until it runs out, then the order is locked and calibration restarts
func (c *MultiPointController) pairs(slots []*device.Blob) ([parameter.SubControllers][2]*device.Blob, bool) {
	var out [parameter.SubControllers][2]*device.Blob
	num := 0
	for _, p := range slots {
		if p != nil {
			num++
		}
	}

	c.ordered = c.ordered && c.lastNumPoints == num && c.calTimeout == 0
	if !c.ordered {
		if c.calTimeout > 0 {
			c.calTimeout--
			if c.calTimeout > 0 {
				return out, false
			}
		} else {
			c.calTimeout = parameter.RecalibrationFrames
			return out, false
		}
		c.ordered = true
		if c.autoCalib {
			c.resetCalibration()
		}
	}

	c.lastNumPoints = num
	for i := range out {
		out[i] = [2]*device.Blob{slots[2*i], slots[2*i+1]}
	}
	return out, true
}

func (c *MultiPointController) extent(pair [2]*device.Blob, i int) float64 {
	d := vmath.Distance2D(pair[0].X, pair[0].Y, pair[1].X, pair[1].Y)
	if c.autoCalib && d < c.min[i] {
		c.min[i] = d
	}
	if c.autoCalib && d > c.max[i] {
		c.max[i] = d
	}

	e := (d - c.min[i]) / (c.max[i] - c.min[i] + parameter.ExtentEpsilon)
	e = (e + c.lastExtent[i]) / 2
	c.lastExtent[i] = e
	return e
}

// angle maps the slope of the pair into [-1, 1]
func angle(pair [2]*device.Blob) float64 {
	a := math.Atan2(pair[1].Y-pair[0].Y, pair[1].X-pair[0].X)
	return 2 * a / math.Pi
}

// Control binds unseen bars to a point pair, then actuates bound bars on later ticks
func (c *MultiPointController) Control(bar Actuator) {
	if !c.link.associated {
		return
	}
	if !c.ledOn {
		c.link.dev.SetLEDs(1 << bar.Team())
		c.ledOn = true
	}

	idx, ok := c.bindings[bar]
	if !ok {
		c.bind(bar)
		return
	}
	bar.Rotate(c.rot[idx])
	bar.Slide(c.slide[idx]*2 - 1)
}

func (c *MultiPointController) bind(bar Actuator) {
	var idx int
	if len(c.sequence) > 0 {
		idx = c.sequence[len(c.bindings)%len(c.sequence)]
	} else {
		var lens [parameter.SubControllers]int
		for _, i := range c.bindings {
			lens[i]++
		}
		if lens[0] > lens[1] {
			idx = 1
		}
	}
	c.bindings[bar] = min(max(idx, 0), parameter.SubControllers-1)
}

// Binding returns the point pair a bar is bound to
func (c *MultiPointController) Binding(bar Actuator) (int, bool) {
	idx, ok := c.bindings[bar]
	return idx, ok
}

// Extent returns the smoothed extent of a point pair
func (c *MultiPointController) Extent(i int) float64 { return c.lastExtent[i] }

// Angle returns the rotation signal of a point pair
func (c *MultiPointController) Angle(i int) float64 { return c.rot[i] }
