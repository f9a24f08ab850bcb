package handpilot

// Modifier is a keyboard modifier used by Backend.Chord.
type Modifier int

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModShift
	ModSuper
)

// Key identifies a non-modifier key used by Backend.Chord.
type Key int

const (
	KeyNone Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyDigit3
	KeyC
	KeyV
)

// Backend is the capability set both input backends (local OS input and the
// Bluetooth HID peripheral) satisfy. Positive dy in Scroll scrolls up.
type Backend interface {
	MoveTo(x, y int)
	LeftDown()
	LeftUp()
	ClickLeft()
	Scroll(dx, dy float64)
	// Chord presses the given modifiers and key together, then releases
	// them. Implementations that cannot express a capability (no clipboard,
	// no HID permissions) silently no-op.
	Chord(mods Modifier, key Key)
	Close() error
}
