package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// ScrollConfig configures the two-finger scroll machine.
type ScrollConfig struct {
	// RaiseThr is the epsilon used by FingerExtended for index/middle.
	RaiseThr float64
	// PairThr is the max index-middle tip distance for the pose to count.
	PairThr float64
	// MinDelta is the minimum normalised vertical displacement before a
	// scroll is considered, combined with the sensitivity gate below into
	// one monotone threshold.
	MinDelta float64
	// Sensitivity scales normalised displacement into a scroll delta.
	Sensitivity float64
}

// scrollMinMagnitude is the minimum scaled scroll magnitude that survives
// the sensitivity gate.
const scrollMinMagnitude = 0.3

// Validate checks the configuration for invalid values.
func (c ScrollConfig) Validate() error {
	if c.PairThr <= 0 {
		return fmt.Errorf("gesture: scroll pair_thr must be > 0, got %.4f", c.PairThr)
	}
	if c.Sensitivity <= 0 {
		return fmt.Errorf("gesture: scroll sensitivity must be > 0, got %.4f", c.Sensitivity)
	}
	return nil
}

// Scroll detects a two-finger (index+middle) vertical scroll pose, emitting
// Scroll deltas as the pair moves.
type Scroll struct {
	cfg       ScrollConfig
	hasRef    bool
	yRef      float64
	scrolling bool
}

// NewScroll creates a Scroll machine. Returns an error if cfg is invalid.
func NewScroll(cfg ScrollConfig) (*Scroll, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scroll{cfg: cfg}, nil
}

// IsScrolling reports whether the scroll pose was active on the most recent
// Update call, for the arbiter's cursor-suppression gate.
func (s *Scroll) IsScrolling() bool {
	return s.scrolling
}

func (s *Scroll) isActivePose(hand handpilot.Hand) bool {
	index := handpilot.FingerExtended(hand.Lm(handpilot.IndexTip), hand.Lm(handpilot.IndexPIP), s.cfg.RaiseThr)
	middle := handpilot.FingerExtended(hand.Lm(handpilot.MiddleTip), hand.Lm(handpilot.MiddlePIP), s.cfg.RaiseThr)
	if !index || !middle {
		return false
	}
	if handpilot.Dist3(hand.Lm(handpilot.IndexTip), hand.Lm(handpilot.MiddleTip)) >= s.cfg.PairThr {
		return false
	}
	ringCurled := hand.Lm(handpilot.RingTip).Y >= hand.Lm(handpilot.RingPIP).Y
	pinkyCurled := hand.Lm(handpilot.PinkyTip).Y >= hand.Lm(handpilot.PinkyPIP).Y
	return ringCurled && pinkyCurled
}

// Update implements Machine.
func (s *Scroll) Update(snap handpilot.Snapshot) []handpilot.Event {
	hand, ok := snap.Primary()
	if !ok {
		s.scrolling = false
		s.hasRef = false
		return nil
	}

	if !s.isActivePose(hand) {
		s.scrolling = false
		s.hasRef = false
		return nil
	}

	s.scrolling = true
	currentY := (hand.Lm(handpilot.IndexTip).Y + hand.Lm(handpilot.MiddleTip).Y) / 2

	if !s.hasRef {
		s.yRef = currentY
		s.hasRef = true
		return nil
	}

	dy := currentY - s.yRef
	if dy < 0 {
		dy = -dy
	}
	if dy <= s.cfg.MinDelta {
		return nil
	}

	delta := -(currentY - s.yRef) * s.cfg.Sensitivity
	magnitude := delta
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if magnitude <= scrollMinMagnitude {
		return nil
	}

	s.yRef = currentY
	return []handpilot.Event{handpilot.ScrollEvent(delta)}
}
