package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// FrameConfig configures the two-handed "picture frame" screenshot machine.
type FrameConfig struct {
	// ActivationTime is how long the pose must be held before it fires.
	ActivationTime float64
	// Cooldown is the minimum time between successive triggers.
	Cooldown float64
}

// Validate checks the configuration for invalid values.
func (c FrameConfig) Validate() error {
	if c.ActivationTime < 0 || c.Cooldown < 0 {
		return fmt.Errorf("gesture: frame activation_time/cooldown must be >= 0")
	}
	return nil
}

// frameTolerance softens the inequality comparisons that define the frame
// pose, reducing flicker at the pose boundary.
const frameTolerance = 0.01

// Frame detects the two-handed "picture frame" pose (left thumb up + index
// right, right thumb down + index left) held for ActivationTime, emitting
// Screenshot with a cooldown.
type Frame struct {
	cfg       FrameConfig
	held      bool
	start     float64
	lastFired float64
}

// NewFrame creates a Frame machine. Returns an error if cfg is invalid.
func NewFrame(cfg FrameConfig) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Frame{cfg: cfg, lastFired: -1e9}, nil
}

func leftFramePose(h handpilot.Hand) bool {
	thumbUp := h.Lm(handpilot.ThumbTip).Y+frameTolerance < h.Lm(handpilot.ThumbIP).Y &&
		h.Lm(handpilot.ThumbIP).Y+frameTolerance < h.Lm(handpilot.ThumbMCP).Y
	indexRight := h.Lm(handpilot.IndexTip).X > h.Lm(handpilot.IndexPIP).X+frameTolerance &&
		h.Lm(handpilot.IndexPIP).X > h.Lm(handpilot.IndexMCP).X+frameTolerance
	return thumbUp && indexRight
}

func rightFramePose(h handpilot.Hand) bool {
	thumbDown := h.Lm(handpilot.ThumbTip).Y > h.Lm(handpilot.ThumbIP).Y+frameTolerance &&
		h.Lm(handpilot.ThumbIP).Y > h.Lm(handpilot.ThumbMCP).Y+frameTolerance
	indexLeft := h.Lm(handpilot.IndexTip).X+frameTolerance < h.Lm(handpilot.IndexPIP).X &&
		h.Lm(handpilot.IndexPIP).X+frameTolerance < h.Lm(handpilot.IndexMCP).X
	return thumbDown && indexLeft
}

// Update implements Machine.
func (f *Frame) Update(snap handpilot.Snapshot) []handpilot.Event {
	left, leftOK := snap.ByLabel(handpilot.HandLeft)
	right, rightOK := snap.ByLabel(handpilot.HandRight)

	posed := leftOK && rightOK && leftFramePose(left) && rightFramePose(right)
	if !posed {
		f.held = false
		return nil
	}

	// No hold may accrue during the cooldown window, so a pose held
	// continuously across a trigger can't pre-charge the next one; the
	// pose must be freshly held for the full activation time once the
	// cooldown elapses.
	if snap.T-f.lastFired < f.cfg.Cooldown {
		f.held = false
		return nil
	}

	if !f.held {
		f.held = true
		f.start = snap.T
		return nil
	}

	if snap.T-f.start < f.cfg.ActivationTime {
		return nil
	}

	f.held = false
	f.lastFired = snap.T
	return []handpilot.Event{handpilot.ScreenshotEvent}
}
