package backend

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
	"github.com/sarinacheng/handpilot/pkg/handpilot/hid"
)

// chordReleaseDelay is the pause between a chord's down report and its
// all-keys-up release report. Without it, a host can coalesce the two
// reports and silently drop the chord.
const chordReleaseDelay = 30 * time.Millisecond

// chordKeys maps the Backend key vocabulary to USB HID usage-table
// keycodes, per the original Bluetooth controller's scan-code table.
var chordKeys = map[handpilot.Key]byte{
	handpilot.KeyArrowLeft:  0x50,
	handpilot.KeyArrowRight: 0x4f,
	handpilot.KeyDigit3:     0x20,
	handpilot.KeyC:          0x06,
	handpilot.KeyV:          0x19,
}

// hidModifiers maps the Backend modifier bitmask to HID keyboard modifier
// bits. Only the left-hand variant of each modifier is used, matching the
// single-key-slot reports this peripheral sends.
func hidModifiers(m handpilot.Modifier) byte {
	var out byte
	if m&handpilot.ModCtrl != 0 {
		out |= 0x01
	}
	if m&handpilot.ModShift != 0 {
		out |= 0x02
	}
	if m&handpilot.ModSuper != 0 {
		out |= 0x08
	}
	return out
}

// HID is a Backend that drives a paired host over the Bluetooth HID
// peripheral transport: absolute cursor positions are converted to the
// relative deltas HID mouse reports require.
type HID struct {
	profile *hid.Profile
	ctrlLn  *hid.Listener
	intrLn  *hid.Listener

	mu   sync.Mutex
	ctrl *hid.Channel
	intr *hid.Channel
	dead bool

	closed chan struct{}

	buttons byte
	lastX   int
	lastY   int
	init    bool
}

// NewHID registers the HID profile with BlueZ, opens the control and
// interrupt L2CAP listeners, and blocks until a host accepts both channels.
func NewHID(deviceName string) (*HID, error) {
	profile, err := hid.RegisterProfile(deviceName)
	if err != nil {
		return nil, err
	}

	ctrlLn, err := hid.Listen(hid.PSMControl)
	if err != nil {
		profile.Close()
		return nil, err
	}
	intrLn, err := hid.Listen(hid.PSMInterrupt)
	if err != nil {
		ctrlLn.Close()
		profile.Close()
		return nil, err
	}

	ctrl, err := ctrlLn.Accept()
	if err != nil {
		intrLn.Close()
		ctrlLn.Close()
		profile.Close()
		return nil, fmt.Errorf("hid backend: accept control channel: %w", err)
	}
	intr, err := intrLn.Accept()
	if err != nil {
		ctrl.Close()
		intrLn.Close()
		ctrlLn.Close()
		profile.Close()
		return nil, fmt.Errorf("hid backend: accept interrupt channel: %w", err)
	}

	return &HID{
		profile: profile,
		ctrlLn:  ctrlLn,
		intrLn:  intrLn,
		ctrl:    ctrl,
		intr:    intr,
		closed:  make(chan struct{}),
	}, nil
}

// send writes one report on the interrupt channel. A send failure marks the
// connection dead, drops the report, and starts a background re-accept; no
// reports are queued while disconnected.
func (h *HID) send(report []byte) {
	h.mu.Lock()
	intr := h.intr
	dead := h.dead
	h.mu.Unlock()
	if dead || intr == nil {
		return
	}
	if err := intr.Send(report); err != nil {
		log.Printf("hid backend: send failed, waiting for host to reconnect: %v", err)
		h.markDead()
	}
}

func (h *HID) markDead() {
	h.mu.Lock()
	if h.dead {
		h.mu.Unlock()
		return
	}
	h.dead = true
	ctrl, intr := h.ctrl, h.intr
	h.ctrl, h.intr = nil, nil
	h.mu.Unlock()

	if ctrl != nil {
		ctrl.Close()
	}
	if intr != nil {
		intr.Close()
	}
	go h.reaccept()
}

// reaccept blocks on the still-open listeners until the host reconnects both
// channels, then brings the backend back to life. Closing the backend closes
// the listeners, which unblocks the pending Accept with an error.
func (h *HID) reaccept() {
	ctrl, err := h.ctrlLn.Accept()
	if err != nil {
		return
	}
	intr, err := h.intrLn.Accept()
	if err != nil {
		ctrl.Close()
		return
	}

	select {
	case <-h.closed:
		ctrl.Close()
		intr.Close()
		return
	default:
	}

	h.mu.Lock()
	h.ctrl, h.intr = ctrl, intr
	h.dead = false
	h.mu.Unlock()
	log.Printf("hid backend: host reconnected")
}

func (h *HID) sendMouse(dx, dy, wheel int) {
	h.send(hid.MouseReport(h.buttons, dx, dy, wheel))
}

// MoveTo converts the absolute position into one or more relative HID mouse
// reports, splitting any displacement beyond the signed-byte range into a
// burst of reports.
func (h *HID) MoveTo(x, y int) {
	if !h.init {
		h.lastX, h.lastY = x, y
		h.init = true
		return
	}

	dxSteps := hid.SplitDeltas(x - h.lastX)
	dySteps := hid.SplitDeltas(y - h.lastY)
	steps := len(dxSteps)
	if len(dySteps) > steps {
		steps = len(dySteps)
	}
	for i := 0; i < steps; i++ {
		var dx, dy int
		if i < len(dxSteps) {
			dx = dxSteps[i]
		}
		if i < len(dySteps) {
			dy = dySteps[i]
		}
		h.sendMouse(dx, dy, 0)
	}

	h.lastX, h.lastY = x, y
}

func (h *HID) LeftDown() {
	h.buttons |= hid.ButtonLeft
	h.sendMouse(0, 0, 0)
}

func (h *HID) LeftUp() {
	h.buttons &^= hid.ButtonLeft
	h.sendMouse(0, 0, 0)
}

func (h *HID) ClickLeft() {
	h.LeftDown()
	h.LeftUp()
}

// Scroll sends a wheel report; dx is unused since this peripheral has no
// horizontal wheel axis. dy is rounded rather than truncated so a small but
// non-zero scroll delta (already past the gesture layer's magnitude gate)
// still reaches the host instead of flooring to a silent no-op.
func (h *HID) Scroll(dx, dy float64) {
	wheel := int(math.Round(dy))
	if wheel == 0 {
		return
	}
	h.sendMouse(0, 0, wheel)
}

// Chord sends a keyboard report with the given modifiers and key, then the
// all-keys-up release report.
func (h *HID) Chord(mods handpilot.Modifier, key handpilot.Key) {
	code, ok := chordKeys[key]
	if !ok {
		return
	}
	h.send(hid.KeyboardReport(hidModifiers(mods), code))
	time.Sleep(chordReleaseDelay)
	h.send(hid.KeyboardRelease())
}

// Close tears down both channels, both listeners, and the D-Bus profile
// registration.
func (h *HID) Close() error {
	close(h.closed)

	h.mu.Lock()
	ctrl, intr := h.ctrl, h.intr
	h.ctrl, h.intr = nil, nil
	h.dead = true
	h.mu.Unlock()

	if intr != nil {
		intr.Close()
	}
	if ctrl != nil {
		ctrl.Close()
	}
	h.intrLn.Close()
	h.ctrlLn.Close()
	return h.profile.Close()
}
