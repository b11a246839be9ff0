package device

import (
	"log"
	"sync"
)

// Unavailable stands in for an address no driver can reach; it never associates
type Unavailable struct {
	addr string
	once sync.Once
	ch   chan Message
}

func NewUnavailable(addr string) *Unavailable {
	return &Unavailable{addr: addr, ch: make(chan Message)}
}

func (d *Unavailable) Address() string { return d.addr }

func (d *Unavailable) Associate() bool {
	d.once.Do(func() {
		log.Printf("device %q: no driver available, controller will not associate", d.addr)
	})
	return false
}

func (d *Unavailable) Enable(ReportMode)           {}
func (d *Unavailable) SetLEDs(uint8)               {}
func (d *Unavailable) Messages() <-chan Message    { return d.ch }
func (d *Unavailable) AccCalibration() Calibration { return DefaultCalibration }
func (d *Unavailable) Close() error                { return nil }
