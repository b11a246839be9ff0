package input

import (
	"log"
	"time"

	"github.com/lixenwraith/tuzbolin/device"
)

// Actuator is the bar side of a controller: the idempotent actuation primitives
type Actuator interface {
	Rotate(p float64)
	Slide(a float64)
	HardTurn(side float64)
	Team() int
}

// Controller turns an input source into bar actuation
// Poll runs once per tick before Control is called for every bar it drives
type Controller interface {
	Poll(now time.Time)
	Control(bar Actuator)
}

// Associable controllers need a device connection before they can play
type Associable interface {
	Associated() bool
	Associate() bool
}

// PointTelemetryProvider reports how many IR points the controller tracks
type PointTelemetryProvider interface {
	TrackedPoints() int
}

// PointViewer exposes the raw IR slots of the last processed report, for debug views
type PointViewer interface {
	LastPoints() []*device.Blob
}

// deviceLink owns the association state and message drain of a device-backed controller
type deviceLink struct {
	dev        device.Device
	mode       device.ReportMode
	associated bool
	onAssoc    func()
	buf        []device.Message
}

func (l *deviceLink) Associated() bool { return l.associated }

// Associate attempts one association; failures are not errors
func (l *deviceLink) Associate() bool {
	if l.associated {
		return true
	}
	if !l.dev.Associate() {
		return false
	}
	l.dev.Enable(l.mode)
	l.associated = true
	log.Printf("controller %q associated", l.dev.Address())
	if l.onAssoc != nil {
		l.onAssoc()
	}
	return true
}

// drain returns the messages queued since the last tick
// A disconnect report unassociates the controller and discards what follows it
func (l *deviceLink) drain() []device.Message {
	l.buf = device.Drain(l.dev.Messages(), l.buf[:0])
	if !l.associated {
		return nil
	}
	for i, msg := range l.buf {
		switch msg.Kind {
		case device.KindDisconnect:
			l.associated = false
			log.Printf("controller %q disconnected", l.dev.Address())
			return l.buf[:i]
		case device.KindError:
			log.Printf("controller %q error: %s", l.dev.Address(), msg.Err)
		}
	}
	return l.buf
}

// normalizeSlots pads or truncates IR slots to the camera slot count
func normalizeSlots(blobs []*device.Blob, n int) []*device.Blob {
	out := make([]*device.Blob, n)
	copy(out, blobs)
	return out
}
