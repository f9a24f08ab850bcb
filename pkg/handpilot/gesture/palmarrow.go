package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// PalmArrowConfig configures the one-handed held palm-up-with-fingers-tight
// machine.
type PalmArrowConfig struct {
	// RaiseThr is the epsilon used by FingerExtended for all five fingers.
	RaiseThr float64
	// TightThr is the max adjacent-fingertip distance for "tight together".
	TightThr float64
	// Hold is how long the pose must be held per hand before it fires.
	Hold float64
	// Cooldown is the minimum time between successive triggers, per hand.
	Cooldown float64
}

// Validate checks the configuration for invalid values.
func (c PalmArrowConfig) Validate() error {
	if c.TightThr <= 0 {
		return fmt.Errorf("gesture: palm-arrow tight_thr must be > 0, got %.4f", c.TightThr)
	}
	if c.Hold < 0 || c.Cooldown < 0 {
		return fmt.Errorf("gesture: palm-arrow hold/cooldown must be >= 0")
	}
	return nil
}

type palmHandState struct {
	held      bool
	start     float64
	lastFired float64
}

// PalmArrow detects a single hand with all five fingers extended, palm
// facing up, and fingertips held tight together, tracked per hand and with
// a per-hand cooldown.
type PalmArrow struct {
	cfg   PalmArrowConfig
	left  palmHandState
	right palmHandState
}

// NewPalmArrow creates a PalmArrow machine. Returns an error if cfg is
// invalid.
func NewPalmArrow(cfg PalmArrowConfig) (*PalmArrow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &PalmArrow{cfg: cfg}
	p.left.lastFired = -1e9
	p.right.lastFired = -1e9
	return p, nil
}

func (p *PalmArrow) isHeldPose(hand handpilot.Hand) bool {
	tips := [5]int{handpilot.ThumbTip, handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	pips := [5]int{handpilot.ThumbIP, handpilot.IndexPIP, handpilot.MiddlePIP, handpilot.RingPIP, handpilot.PinkyPIP}
	for i, tip := range tips {
		if !handpilot.FingerExtended(hand.Lm(tip), hand.Lm(pips[i]), p.cfg.RaiseThr) {
			return false
		}
	}
	return handpilot.PalmFacingUp(hand) && handpilot.FingersTight(hand, p.cfg.TightThr)
}

func (p *PalmArrow) updateHand(state *palmHandState, hand handpilot.Hand, present bool, now float64) bool {
	if !present || !p.isHeldPose(hand) {
		state.held = false
		state.start = 0
		return false
	}

	if !state.held {
		state.held = true
		state.start = now
		return false
	}

	if now-state.start < p.cfg.Hold {
		return false
	}

	// The hold survives both the trigger and the cooldown window: only
	// breaking the pose clears it, so a pose kept up continuously fires
	// again the moment the cooldown elapses.
	if now-state.lastFired < p.cfg.Cooldown {
		return false
	}

	state.lastFired = now
	return true
}

// Update implements Machine.
func (p *PalmArrow) Update(snap handpilot.Snapshot) []handpilot.Event {
	left, leftOK := snap.ByLabel(handpilot.HandLeft)
	right, rightOK := snap.ByLabel(handpilot.HandRight)

	var events []handpilot.Event

	if !leftOK {
		p.left.held = false
	} else if p.updateHand(&p.left, left, leftOK, snap.T) {
		events = append(events, handpilot.CtrlLeftEvent)
	}

	if !rightOK {
		p.right.held = false
	} else if p.updateHand(&p.right, right, rightOK, snap.T) {
		events = append(events, handpilot.CtrlRightEvent)
	}

	return events
}
