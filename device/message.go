package device

// Kind tags a device message
type Kind uint8

const (
	KindAcc Kind = iota
	KindIR
	KindButtons
	KindError
	KindDisconnect
)

func (k Kind) String() string {
	switch k {
	case KindAcc:
		return "acc"
	case KindIR:
		return "ir"
	case KindButtons:
		return "buttons"
	case KindError:
		return "error"
	case KindDisconnect:
		return "disconnect"
	}
	return "unknown"
}

// ReportMode selects which reports a device sends
type ReportMode uint8

const (
	ReportAcc ReportMode = 1 << iota
	ReportIR
	ReportButtons
)

// Button is a bitmask of pressed buttons
type Button uint16

const (
	ButtonTwo Button = 1 << iota
	ButtonOne
	ButtonB
	ButtonA
	ButtonMinus
	ButtonHome
	ButtonLeft
	ButtonRight
	ButtonDown
	ButtonUp
	ButtonPlus
)

// Axis indexes accelerometer readings
const (
	AxisX = iota
	AxisY
	AxisZ
)

// Blob is one infrared source seen by the camera, in sensor pixels
type Blob struct {
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	Size int     `msgpack:"s,omitempty"`
}

// Message is one report from a device
// IR holds up to four slots; a nil slot is a source not seen
type Message struct {
	Kind    Kind       `msgpack:"k"`
	Acc     [3]float64 `msgpack:"a,omitempty"`
	IR      []*Blob    `msgpack:"ir,omitempty"`
	Buttons Button     `msgpack:"b,omitempty"`
	Err     string     `msgpack:"e,omitempty"`
}

// Calibration holds the accelerometer readings at rest (Zero) and at 1g (One)
type Calibration struct {
	Zero [3]float64 `msgpack:"zero"`
	One  [3]float64 `msgpack:"one"`
}

// DefaultCalibration matches the factory calibration of common controllers
var DefaultCalibration = Calibration{
	Zero: [3]float64{128, 128, 128},
	One:  [3]float64{153, 153, 153},
}

// AccMessage builds an acceleration report
func AccMessage(x, y, z float64) Message {
	return Message{Kind: KindAcc, Acc: [3]float64{x, y, z}}
}

// IRMessage builds an infrared report; nil blobs are empty slots
func IRMessage(blobs ...*Blob) Message {
	return Message{Kind: KindIR, IR: blobs}
}

// ButtonMessage builds a button report
func ButtonMessage(b Button) Message {
	return Message{Kind: KindButtons, Buttons: b}
}

// Point is a shortcut for a visible blob
func Point(x, y float64) *Blob {
	return &Blob{X: x, Y: y, Size: 1}
}
