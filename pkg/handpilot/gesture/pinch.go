package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// PinchConfig configures the one-handed pinch/click/drag machine.
type PinchConfig struct {
	// PinchThr is the thumb-index distance that enters a candidate pinch.
	PinchThr float64
	// ReleaseThr is the distance that exits a candidate or active pinch.
	// Must be >= PinchThr (hysteresis).
	ReleaseThr float64
	// HoldDelay is how long a pinch must be held before it becomes a drag
	// instead of a click.
	HoldDelay float64
}

// Validate checks the configuration for invalid values.
func (c PinchConfig) Validate() error {
	if c.ReleaseThr < c.PinchThr {
		return fmt.Errorf("gesture: pinch release_thr (%.4f) must be >= pinch_thr (%.4f)", c.ReleaseThr, c.PinchThr)
	}
	if c.HoldDelay < 0 {
		return fmt.Errorf("gesture: pinch hold_delay must be >= 0, got %.4f", c.HoldDelay)
	}
	return nil
}

type pinchState int

const (
	pinchIdle pinchState = iota
	pinchPressing
	pinchDragging
)

// debounceWindow is the flicker window below which a quick press-release is
// swallowed rather than fired as a click.
const debounceWindow = 0.05

// Pinch detects a one-handed pinch, distinguishing a quick click from a
// sustained drag via a hold delay.
type Pinch struct {
	cfg   PinchConfig
	state pinchState
	start float64
}

// NewPinch creates a Pinch machine. Returns an error if cfg is invalid.
func NewPinch(cfg PinchConfig) (*Pinch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pinch{cfg: cfg}, nil
}

// Update implements Machine.
func (p *Pinch) Update(snap handpilot.Snapshot) []handpilot.Event {
	hand, ok := snap.Primary()
	if !ok {
		return nil
	}

	d := handpilot.Dist3(hand.Lm(handpilot.ThumbTip), hand.Lm(handpilot.IndexTip))
	now := snap.T

	switch p.state {
	case pinchIdle:
		if d < p.cfg.PinchThr {
			p.state = pinchPressing
			p.start = now
		}

	case pinchPressing:
		if d < p.cfg.PinchThr {
			if now-p.start >= p.cfg.HoldDelay {
				p.state = pinchDragging
				return []handpilot.Event{handpilot.PinchStartEvent}
			}
			return nil
		}
		if d > p.cfg.ReleaseThr {
			elapsed := now - p.start
			p.state = pinchIdle
			p.start = 0
			if elapsed > debounceWindow {
				return []handpilot.Event{handpilot.ClickEvent}
			}
			return nil
		}

	case pinchDragging:
		if d > p.cfg.ReleaseThr {
			p.state = pinchIdle
			p.start = 0
			return []handpilot.Event{handpilot.PinchEndEvent}
		}
	}

	return nil
}
