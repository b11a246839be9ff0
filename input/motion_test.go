package input

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/tuzbolin/device"
)

func newMotion(t *testing.T) (*MotionController, *device.Scripted) {
	t.Helper()
	dev := device.NewScripted("motion", 0, nil)
	c := NewMotionController(dev, 2, 26)
	if !c.Associate() {
		t.Fatal("Expected association")
	}
	return c, dev
}

func TestMotionAssociationSetsLEDsAndMode(t *testing.T) {
	c, dev := newMotion(t)
	if !c.Associated() {
		t.Fatal("Expected associated controller")
	}
	if dev.LEDs() != 1<<1 {
		t.Errorf("Expected LED mask %b, got %b", 1<<1, dev.LEDs())
	}
	if dev.Mode()&device.ReportIR == 0 || dev.Mode()&device.ReportAcc == 0 {
		t.Errorf("Expected acc and IR reports enabled, got %b", dev.Mode())
	}
}

func TestMotionTiltSmoothing(t *testing.T) {
	c, dev := newMotion(t)
	// Default calibration: zero 128, one 153
	dev.Send(device.AccMessage(153, 128, 128))
	c.Poll(t0)
	if math.Abs(c.Rotation()-0.5) > 1e-9 {
		t.Errorf("Expected smoothed rotation 0.5, got %f", c.Rotation())
	}

	dev.Send(device.AccMessage(153, 128, 128))
	c.Poll(t0)
	if math.Abs(c.Rotation()-1) > 1e-9 {
		t.Errorf("Expected rotation 1, got %f", c.Rotation())
	}

	dev.Send(device.AccMessage(128+25*1.4, 128, 128))
	c.Poll(t0)
	if math.Abs(c.Rotation()-1) > 1e-9 {
		t.Errorf("Expected rotation clamped to 1, got %f", c.Rotation())
	}
}

func TestMotionFlickTriggersHardTurn(t *testing.T) {
	c, dev := newMotion(t)
	dev.Send(device.AccMessage(153, 128, 128))
	c.Poll(t0)
	rot := c.Rotation()

	// Relative x drops from 1 to -1: delta 2 exceeds the threshold
	dev.Send(device.AccMessage(103, 128, 128))
	c.Poll(t0)
	if math.Abs(c.HardTurn()-2) > 1e-9 {
		t.Errorf("Expected hard turn 2, got %f", c.HardTurn())
	}
	if c.Rotation() != rot {
		t.Errorf("Expected rotation untouched on flick, got %f", c.Rotation())
	}

	bar := &fakeBar{}
	c.Control(bar)
	if len(bar.hard) != 1 || len(bar.rot) != 0 || len(bar.slide) != 1 {
		t.Errorf("Expected hard turn and slide only, got %+v", bar)
	}
}

func TestMotionStaleFallback(t *testing.T) {
	c, dev := newMotion(t)
	dev.Send(device.IRMessage(device.Point(100, 100), device.Point(200, 100)))
	c.Poll(t0)

	if !c.SkipTick() {
		t.Error("Expected first read to skip the tick")
	}
	lo, hi := c.DistanceRange()
	if lo != 100 || hi != 1 {
		t.Errorf("Expected range [100,1] after first read, got [%f,%f]", lo, hi)
	}

	// Past the staleness threshold (10 frames at 26 fps) tracking resets
	later := t0.Add(500 * time.Millisecond)
	dev.Send(device.IRMessage(device.Point(0, 0), device.Point(300, 0)))
	c.Poll(later)
	if !c.SkipTick() {
		t.Error("Expected stale read to skip the tick")
	}
	lo, hi = c.DistanceRange()
	if lo != 300 || hi != 1 {
		t.Errorf("Expected calibration reset with the min at the new distance, got [%f,%f]", lo, hi)
	}
}

func TestMotionRejectsAmbiguousPair(t *testing.T) {
	c, _ := newMotion(t)
	c.lastDistance = 100
	c.lastIROK = t0

	slots := []*device.Blob{device.Point(0, 0), device.Point(111, 0), nil, nil}
	if p1, p2 := c.trackPoints(slots, t0); p1 != nil || p2 != nil {
		t.Errorf("Expected no pair for an 11%% change, got %v %v", p1, p2)
	}

	slots = []*device.Blob{device.Point(0, 0), device.Point(109, 0), nil, nil}
	if p1, p2 := c.trackPoints(slots, t0); p1 == nil || p2 == nil {
		t.Error("Expected a pair for a 9% change")
	}
}

func TestMotionPicksNearestDistance(t *testing.T) {
	c, _ := newMotion(t)
	c.lastDistance = 100
	c.lastIROK = t0

	// A reflection at 40 px competes with the real pair at 102 px
	a, b, refl := device.Point(0, 0), device.Point(102, 0), device.Point(40, 0)
	p1, p2 := c.trackPoints([]*device.Blob{a, refl, b, nil}, t0)
	if p1 != a || p2 != b {
		t.Errorf("Expected the 102 px pair, got %v %v", p1, p2)
	}
}

func TestMotionAutoCalibrationMonotonic(t *testing.T) {
	c, dev := newMotion(t)
	now := t0
	prevMin, prevMax := math.Inf(1), math.Inf(-1)
	d := 100.0
	for range 40 {
		dev.Send(device.IRMessage(device.Point(0, 0), device.Point(d, 0)))
		c.Poll(now)

		lo, hi := c.DistanceRange()
		if lo > prevMin || hi < prevMax {
			t.Fatalf("Expected min non-increasing and max non-decreasing, got [%f,%f] after [%f,%f]", lo, hi, prevMin, prevMax)
		}
		prevMin, prevMax = lo, hi

		if e := c.Extent(); e < -1e-9 || e > 1 {
			t.Fatalf("Expected extent within [0,1], got %f", e)
		}
		now = now.Add(40 * time.Millisecond)
		d *= 1.05
	}
	if c.Slide() <= 0 {
		t.Errorf("Expected growing distance to push the slide forward, got %f", c.Slide())
	}
}

func TestMotionAutoCalibrationMovesOneBound(t *testing.T) {
	c, dev := newMotion(t)

	// The first distance is below the initial min and above the initial max
	dev.Send(device.IRMessage(device.Point(0, 0), device.Point(200, 0)))
	c.Poll(t0)
	lo, hi := c.DistanceRange()
	if lo != 200 || hi != 1 {
		t.Fatalf("Expected only the min to move to 200, got [%f,%f]", lo, hi)
	}

	dev.Send(device.IRMessage(device.Point(0, 0), device.Point(210, 0)))
	c.Poll(t0.Add(40 * time.Millisecond))
	lo, hi = c.DistanceRange()
	if lo != 200 || hi != 210 {
		t.Errorf("Expected the max to follow on the next frame, got [%f,%f]", lo, hi)
	}
}

func TestMotionButtons(t *testing.T) {
	c, dev := newMotion(t)
	c.lastDistance = 150

	dev.Send(device.ButtonMessage(device.ButtonUp | device.ButtonB))
	c.Poll(t0)
	if math.Abs(c.Slide()-0.1) > 1e-9 {
		t.Errorf("Expected fast slide step 0.1, got %f", c.Slide())
	}

	dev.Send(device.ButtonMessage(device.ButtonDown))
	c.Poll(t0)
	if math.Abs(c.Slide()-0.09) > 1e-9 {
		t.Errorf("Expected slow slide step 0.01, got %f", c.Slide())
	}

	dev.Send(device.ButtonMessage(device.ButtonTwo | device.ButtonA))
	c.Poll(t0)
	if c.HardTurn() != 1 {
		t.Errorf("Expected hard turn from A, got %f", c.HardTurn())
	}
	lo, _ := c.DistanceRange()
	if lo != 150 || c.autoMin {
		t.Errorf("Expected min frozen at 150, got %f auto=%v", lo, c.autoMin)
	}

	dev.Send(device.ButtonMessage(device.ButtonOne))
	c.Poll(t0)
	if _, hi := c.DistanceRange(); hi != 150 || c.autoMax {
		t.Errorf("Expected max frozen at 150, got %f auto=%v", hi, c.autoMax)
	}
}

func TestMotionDisconnect(t *testing.T) {
	dev := device.NewScripted("motion", 1, nil)
	c := NewMotionController(dev, 1, 26)
	if c.Associate() {
		t.Fatal("Expected first association attempt to fail")
	}
	c.Poll(t0)
	if !c.Associated() {
		t.Fatal("Expected Poll to retry association")
	}

	dev.Send(device.AccMessage(153, 128, 128))
	dev.Disconnect()
	c.Poll(t0)
	if c.Associated() {
		t.Fatal("Expected disconnect to unassociate")
	}
	if math.Abs(c.Rotation()-0.5) > 1e-9 {
		t.Errorf("Expected messages before the disconnect to apply, got %f", c.Rotation())
	}

	bar := &fakeBar{}
	c.Control(bar)
	if bar.actuated() {
		t.Error("Expected no actuation while unassociated")
	}
}
