package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// CopyPasteConfig configures the bundled-fingertip "copy" and spread-hand
// "paste" machine. The two gestures share a single candidate field, so a
// transition from one shape to the other cancels the prior hold.
type CopyPasteConfig struct {
	HoldDuration  float64
	BundleRadius  float64
	OpenThr       float64
	SpreadMinDist float64
}

// Validate checks the configuration for invalid values.
func (c CopyPasteConfig) Validate() error {
	if c.BundleRadius <= 0 {
		return fmt.Errorf("gesture: copy bundle_radius must be > 0, got %.4f", c.BundleRadius)
	}
	if c.SpreadMinDist <= 0 {
		return fmt.Errorf("gesture: paste spread_min_dist must be > 0, got %.4f", c.SpreadMinDist)
	}
	if c.HoldDuration < 0 {
		return fmt.Errorf("gesture: copy/paste hold_duration must be >= 0, got %.4f", c.HoldDuration)
	}
	return nil
}

type candidateShape int

const (
	shapeNone candidateShape = iota
	shapeCopy
	shapePaste
)

// CopyPaste detects the bundled-fingertip copy pose and the five-finger
// spread paste pose.
type CopyPaste struct {
	cfg       CopyPasteConfig
	candidate candidateShape
	start     float64
}

// NewCopyPaste creates a CopyPaste machine. Returns an error if cfg is
// invalid.
func NewCopyPaste(cfg CopyPasteConfig) (*CopyPaste, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CopyPaste{cfg: cfg}, nil
}

func tipCentroid(h handpilot.Hand) handpilot.Landmark {
	tips := [5]int{handpilot.ThumbTip, handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	var cx, cy, cz float64
	for _, idx := range tips {
		lm := h.Lm(idx)
		cx += lm.X
		cy += lm.Y
		cz += lm.Z
	}
	n := float64(len(tips))
	return handpilot.Landmark{X: cx / n, Y: cy / n, Z: cz / n}
}

func (c *CopyPaste) isBundled(h handpilot.Hand) bool {
	centroid := tipCentroid(h)
	tips := [5]int{handpilot.ThumbTip, handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	for _, idx := range tips {
		if handpilot.Dist3(h.Lm(idx), centroid) > c.cfg.BundleRadius {
			return false
		}
	}
	return true
}

func (c *CopyPaste) isSpread(h handpilot.Hand) bool {
	tips := [5]int{handpilot.ThumbTip, handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	pips := [5]int{handpilot.ThumbIP, handpilot.IndexPIP, handpilot.MiddlePIP, handpilot.RingPIP, handpilot.PinkyPIP}
	for i, tip := range tips {
		if !handpilot.FingerExtended(h.Lm(tip), h.Lm(pips[i]), 0) {
			return false
		}
	}
	if handpilot.HandOpenness(h) <= c.cfg.OpenThr {
		return false
	}
	return handpilot.FingersSpread(h, c.cfg.SpreadMinDist)
}

func (c *CopyPaste) classify(h handpilot.Hand) candidateShape {
	if c.isBundled(h) {
		return shapeCopy
	}
	if c.isSpread(h) {
		return shapePaste
	}
	return shapeNone
}

// Update implements Machine.
func (c *CopyPaste) Update(snap handpilot.Snapshot) []handpilot.Event {
	hand, ok := snap.Primary()
	if !ok {
		c.candidate = shapeNone
		return nil
	}

	shape := c.classify(hand)
	if shape != c.candidate {
		c.candidate = shape
		c.start = snap.T
		return nil
	}

	if shape == shapeNone {
		return nil
	}

	if snap.T-c.start < c.cfg.HoldDuration {
		return nil
	}

	c.candidate = shapeNone
	c.start = 0
	if shape == shapeCopy {
		return []handpilot.Event{handpilot.CopyEvent}
	}
	return []handpilot.Event{handpilot.PasteEvent}
}
