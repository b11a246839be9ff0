package device

import (
	"errors"
	"sync/atomic"
)

var (
	ErrTraceFormat = errors.New("invalid trace format")
	ErrClosed      = errors.New("device closed")
)

// Device is the driver side of a wireless controller
// Messages are delivered on a bounded channel filled by the driver goroutine
type Device interface {
	Address() string
	Associate() bool
	Enable(mode ReportMode)
	SetLEDs(mask uint8)
	Messages() <-chan Message
	AccCalibration() Calibration
	Close() error
}

// Queue is the bounded channel between a driver goroutine and the game loop
// When full, the newest message is dropped and counted
type Queue struct {
	ch      chan Message
	dropped *atomic.Int64
}

// NewQueue creates a queue; dropped may be shared with a status registry, nil allocates a private counter
func NewQueue(capacity int, dropped *atomic.Int64) *Queue {
	if dropped == nil {
		dropped = new(atomic.Int64)
	}
	return &Queue{ch: make(chan Message, capacity), dropped: dropped}
}

// Offer sends without blocking and reports whether the message was queued
func (q *Queue) Offer(msg Message) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

func (q *Queue) C() <-chan Message { return q.ch }

func (q *Queue) Dropped() int64 { return q.dropped.Load() }

// Drain returns every message currently queued without blocking
func Drain(ch <-chan Message, buf []Message) []Message {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return buf
			}
			buf = append(buf, msg)
		default:
			return buf
		}
	}
}
