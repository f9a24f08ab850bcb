package backend

import (
	"fmt"

	wvi "github.com/bnema/wayland-virtual-input-go"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// Linux evdev key/button codes, the vocabulary wayland-virtual-input-go's
// virtual keyboard and pointer protocols speak.
const (
	btnLeft = 0x110

	keyLeftCtrl  = 29
	keyLeftShift = 42
	keyLeftMeta  = 125
	keyC         = 46
	keyV         = 47
	key3         = 4
	keyLeft      = 105
	keyRight     = 106
)

var localChordKeys = map[handpilot.Key]uint32{
	handpilot.KeyArrowLeft:  keyLeft,
	handpilot.KeyArrowRight: keyRight,
	handpilot.KeyDigit3:     key3,
	handpilot.KeyC:          keyC,
	handpilot.KeyV:          keyV,
}

func localModifierKeys(m handpilot.Modifier) []uint32 {
	var out []uint32
	if m&handpilot.ModCtrl != 0 {
		out = append(out, keyLeftCtrl)
	}
	if m&handpilot.ModShift != 0 {
		out = append(out, keyLeftShift)
	}
	if m&handpilot.ModSuper != 0 {
		out = append(out, keyLeftMeta)
	}
	return out
}

// Local is a Backend driving the host's own Wayland compositor through a
// virtual-pointer/virtual-keyboard client, for controlling the machine the
// camera is attached to rather than a paired Bluetooth host.
type Local struct {
	client *wvi.Client

	lastX, lastY int
	init         bool
}

// NewLocal connects to the compositor's virtual input protocols.
func NewLocal() (*Local, error) {
	client, err := wvi.NewClient()
	if err != nil {
		return nil, fmt.Errorf("local backend: connect virtual input client: %w", err)
	}
	return &Local{client: client}, nil
}

// MoveTo emits the relative pointer motion between the last and current
// absolute position; the compositor, not this process, owns the cursor's
// absolute location.
func (l *Local) MoveTo(x, y int) {
	if !l.init {
		l.lastX, l.lastY = x, y
		l.init = true
		return
	}
	dx, dy := x-l.lastX, y-l.lastY
	if dx != 0 || dy != 0 {
		l.client.PointerMotion(float64(dx), float64(dy))
		l.client.PointerFrame()
	}
	l.lastX, l.lastY = x, y
}

func (l *Local) LeftDown() {
	l.client.PointerButton(btnLeft, true)
	l.client.PointerFrame()
}

func (l *Local) LeftUp() {
	l.client.PointerButton(btnLeft, false)
	l.client.PointerFrame()
}

func (l *Local) ClickLeft() {
	l.LeftDown()
	l.LeftUp()
}

// Scroll emits a vertical scroll axis event; dx is unused, matching the HID
// backend's mouse-wheel-only hardware.
func (l *Local) Scroll(dx, dy float64) {
	if dy == 0 {
		return
	}
	l.client.PointerAxisVertical(-dy)
	l.client.PointerFrame()
}

// Chord presses each modifier key, presses and releases the target key, then
// releases the modifiers in reverse order.
func (l *Local) Chord(mods handpilot.Modifier, key handpilot.Key) {
	code, ok := localChordKeys[key]
	if !ok {
		return
	}
	modKeys := localModifierKeys(mods)
	for _, mk := range modKeys {
		l.client.Key(mk, true)
	}
	l.client.Key(code, true)
	l.client.Key(code, false)
	for i := len(modKeys) - 1; i >= 0; i-- {
		l.client.Key(modKeys[i], false)
	}
}

// Close releases the virtual input client and its compositor connection.
func (l *Local) Close() error {
	return l.client.Close()
}
