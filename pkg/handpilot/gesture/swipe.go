package gesture

import (
	"fmt"
	"math"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// SwipeConfig configures the four-finger horizontal swipe machine.
type SwipeConfig struct {
	// RaiseThr is the epsilon used by FingerExtended for all four fingers.
	RaiseThr float64
	// PairThr is the "together" threshold for adjacent fingertip pairs.
	PairThr float64
	// Hold is how long the pose must be held before displacement is
	// evaluated.
	Hold float64
	// MinDist is the minimum displacement magnitude of the middle tip to
	// count as a swipe.
	MinDist float64
}

// Validate checks the configuration for invalid values.
func (c SwipeConfig) Validate() error {
	if c.PairThr <= 0 {
		return fmt.Errorf("gesture: swipe pair_thr must be > 0, got %.4f", c.PairThr)
	}
	if c.MinDist <= 0 {
		return fmt.Errorf("gesture: swipe min_dist must be > 0, got %.4f", c.MinDist)
	}
	if c.Hold < 0 {
		return fmt.Errorf("gesture: swipe hold must be >= 0, got %.4f", c.Hold)
	}
	return nil
}

// Swipe detects a four-finger horizontal swipe, firing once per activation
// and re-arming on exit.
type Swipe struct {
	cfg SwipeConfig

	active    bool
	start     float64
	startX    float64
	startY    float64
	fired     bool
	lastLabel handpilot.Handedness
}

// NewSwipe creates a Swipe machine. Returns an error if cfg is invalid.
func NewSwipe(cfg SwipeConfig) (*Swipe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Swipe{cfg: cfg}, nil
}

func (s *Swipe) fingersExtendedAndTogether(hand handpilot.Hand) bool {
	tips := [4]int{handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	pips := [4]int{handpilot.IndexPIP, handpilot.MiddlePIP, handpilot.RingPIP, handpilot.PinkyPIP}
	for i, tip := range tips {
		if !handpilot.FingerExtended(hand.Lm(tip), hand.Lm(pips[i]), s.cfg.RaiseThr) {
			return false
		}
	}

	together := 0
	for i := 0; i < 3; i++ {
		if handpilot.Dist3(hand.Lm(tips[i]), hand.Lm(tips[i+1])) < s.cfg.PairThr {
			together++
		}
	}
	return together >= 2
}

// Update implements Machine.
func (s *Swipe) Update(snap handpilot.Snapshot) []handpilot.Event {
	hand, ok := snap.Primary()
	if !ok {
		s.active = false
		s.fired = false
		return nil
	}

	if !s.fingersExtendedAndTogether(hand) {
		s.active = false
		s.fired = false
		return nil
	}

	mid := hand.Lm(handpilot.MiddleTip)

	if !s.active {
		s.active = true
		s.fired = false
		s.start = snap.T
		s.startX = mid.X
		s.startY = mid.Y
		s.lastLabel = hand.Label
		return nil
	}

	if s.fired {
		return nil
	}

	if snap.T-s.start < s.cfg.Hold {
		return nil
	}

	dx := mid.X - s.startX
	dy := mid.Y - s.startY
	if math.Hypot(dx, dy) < s.cfg.MinDist {
		return nil
	}
	if math.Abs(dx) <= math.Abs(dy) {
		return nil
	}

	s.fired = true

	label := hand.Label
	if label == handpilot.HandUnknown {
		label = s.lastLabel
	}
	switch label {
	case handpilot.HandLeft:
		return []handpilot.Event{handpilot.CtrlLeftEvent}
	case handpilot.HandRight:
		return []handpilot.Event{handpilot.CtrlRightEvent}
	default:
		if dx < 0 {
			return []handpilot.Event{handpilot.CtrlLeftEvent}
		}
		return []handpilot.Event{handpilot.CtrlRightEvent}
	}
}
