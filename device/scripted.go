package device

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// Scripted is a programmable device for tests and demos
// Associate fails until the configured number of attempts has been made
type Scripted struct {
	addr        string
	calibration Calibration
	queue       *Queue

	mu           sync.Mutex
	succeedAfter int // attempts before success, negative never succeeds
	attempts     int
	associated   bool
	mode         ReportMode
	leds         uint8
	closed       bool
}

// NewScripted creates a device that associates on attempt succeedAfter+1, or never when negative
func NewScripted(addr string, succeedAfter int, dropped *atomic.Int64) *Scripted {
	return &Scripted{
		addr:         addr,
		calibration:  DefaultCalibration,
		queue:        NewQueue(parameter.DeviceQueueSize, dropped),
		succeedAfter: succeedAfter,
	}
}

func (d *Scripted) Address() string { return d.addr }

func (d *Scripted) Associate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.attempts++
	if d.succeedAfter >= 0 && d.attempts > d.succeedAfter {
		d.associated = true
	}
	return d.associated
}

func (d *Scripted) Enable(mode ReportMode) {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
}

func (d *Scripted) SetLEDs(mask uint8) {
	d.mu.Lock()
	d.leds = mask
	d.mu.Unlock()
}

func (d *Scripted) Messages() <-chan Message { return d.queue.C() }

func (d *Scripted) AccCalibration() Calibration { return d.calibration }

func (d *Scripted) SetCalibration(c Calibration) { d.calibration = c }

func (d *Scripted) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.associated = false
	return nil
}

// Send queues a message as the driver goroutine would; it is dropped when the queue is full
func (d *Scripted) Send(msgs ...Message) {
	for _, m := range msgs {
		d.queue.Offer(m)
	}
}

// Disconnect reports a lost connection and requires a new association
func (d *Scripted) Disconnect() {
	d.mu.Lock()
	d.associated = false
	d.attempts = 0
	d.mu.Unlock()
	d.queue.Offer(Message{Kind: KindDisconnect})
}

func (d *Scripted) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

func (d *Scripted) LEDs() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leds
}

func (d *Scripted) Mode() ReportMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Scripted) Dropped() int64 { return d.queue.Dropped() }
