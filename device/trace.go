package device

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/tuzbolin/parameter"
)

const (
	traceMagic   = "tuzbolin-trace"
	traceVersion = 1
)

// Trace file layout: one header followed by records until EOF, all msgpack encoded
type traceHeader struct {
	Magic       string      `msgpack:"magic"`
	Version     int         `msgpack:"version"`
	Address     string      `msgpack:"address"`
	Calibration Calibration `msgpack:"calibration"`
}

type traceRecord struct {
	At  time.Duration `msgpack:"at"`
	Msg Message       `msgpack:"msg"`
}

// --- Replay ---

// Replay plays a recorded trace back as a device
// Realtime replay keeps the recorded spacing and drops on overflow like a driver;
// otherwise every message is delivered as soon as the consumer has room
type Replay struct {
	header   traceHeader
	records  []traceRecord
	realtime bool
	queue    *Queue

	mu      sync.Mutex
	started bool
	closed  bool
	mode    ReportMode
	leds    uint8
	stop    chan struct{}
	done    chan struct{}
}

// OpenReplay loads a trace file
func OpenReplay(path string, realtime bool, dropped *atomic.Int64) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return LoadReplay(f, realtime, dropped)
}

// LoadReplay decodes a whole trace from r
func LoadReplay(r io.Reader, realtime bool, dropped *atomic.Int64) (*Replay, error) {
	dec := msgpack.NewDecoder(r)

	var h traceHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTraceFormat, err)
	}
	if h.Magic != traceMagic || h.Version != traceVersion {
		return nil, fmt.Errorf("%w: magic %q version %d", ErrTraceFormat, h.Magic, h.Version)
	}

	var records []traceRecord
	for {
		var rec traceRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrTraceFormat, len(records), err)
		}
		records = append(records, rec)
	}

	return &Replay{
		header:   h,
		records:  records,
		realtime: realtime,
		queue:    NewQueue(parameter.DeviceQueueSize, dropped),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (d *Replay) Address() string { return d.header.Address }

func (d *Replay) Len() int { return len(d.records) }

// Associate starts playback on the first call
func (d *Replay) Associate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if !d.started {
		d.started = true
		go d.play()
	}
	return true
}

func (d *Replay) play() {
	defer close(d.done)
	start := time.Now()
	for _, rec := range d.records {
		if d.realtime {
			if wait := time.Until(start.Add(rec.At)); wait > 0 {
				t := time.NewTimer(wait)
				select {
				case <-t.C:
				case <-d.stop:
					t.Stop()
					return
				}
			}
			d.queue.Offer(rec.Msg)
			continue
		}
		select {
		case d.queue.ch <- rec.Msg:
		case <-d.stop:
			return
		}
	}
}

func (d *Replay) Enable(mode ReportMode) {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
}

func (d *Replay) SetLEDs(mask uint8) {
	d.mu.Lock()
	d.leds = mask
	d.mu.Unlock()
}

func (d *Replay) Messages() <-chan Message    { return d.queue.C() }
func (d *Replay) AccCalibration() Calibration { return d.header.Calibration }

func (d *Replay) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	started := d.started
	close(d.stop)
	d.mu.Unlock()

	if started {
		<-d.done
	}
	return nil
}

// --- Recorder ---

// Recorder tees every message of another device into a trace
type Recorder struct {
	inner Device
	w     io.Writer
	enc   *msgpack.Encoder
	queue *Queue
	now   func() time.Time

	mu      sync.Mutex
	started bool
	closed  bool
	start   time.Time
	err     error
	stop    chan struct{}
	done    chan struct{}
}

// NewRecorder wraps inner; the trace header is written on the first successful association
func NewRecorder(inner Device, w io.Writer, dropped *atomic.Int64) *Recorder {
	return &Recorder{
		inner: inner,
		w:     w,
		enc:   msgpack.NewEncoder(w),
		queue: NewQueue(parameter.DeviceQueueSize, dropped),
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (r *Recorder) Address() string { return r.inner.Address() }

func (r *Recorder) Associate() bool {
	if !r.inner.Associate() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.closed {
		return !r.closed
	}
	r.started = true
	r.start = r.now()

	h := traceHeader{
		Magic:       traceMagic,
		Version:     traceVersion,
		Address:     r.inner.Address(),
		Calibration: r.inner.AccCalibration(),
	}
	if err := r.enc.Encode(&h); err != nil {
		r.err = fmt.Errorf("write trace header: %w", err)
		log.Printf("recorder %q: %v", r.inner.Address(), r.err)
	}
	go r.forward()
	return true
}

func (r *Recorder) forward() {
	defer close(r.done)
	in := r.inner.Messages()
	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return
			}
			r.record(msg)
			r.queue.Offer(msg)
		case <-r.stop:
			return
		}
	}
}

func (r *Recorder) record(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	rec := traceRecord{At: r.now().Sub(r.start), Msg: msg}
	if err := r.enc.Encode(&rec); err != nil {
		r.err = fmt.Errorf("write trace record: %w", err)
		log.Printf("recorder %q: %v", r.inner.Address(), r.err)
	}
}

// Err returns the first write error, if any
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) Enable(mode ReportMode)      { r.inner.Enable(mode) }
func (r *Recorder) SetLEDs(mask uint8)          { r.inner.SetLEDs(mask) }
func (r *Recorder) Messages() <-chan Message    { return r.queue.C() }
func (r *Recorder) AccCalibration() Calibration { return r.inner.AccCalibration() }

// Close stops forwarding, closes the wrapped device and the trace writer if it is a Closer
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	started := r.started
	close(r.stop)
	r.mu.Unlock()

	if started {
		<-r.done
	}

	err := r.inner.Close()
	if c, ok := r.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return errors.Join(err, r.Err())
}
