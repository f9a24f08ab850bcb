package gesture

import (
	"fmt"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// StopResumeConfig configures the two-handed pause/resume supervisor.
type StopResumeConfig struct {
	// StopHoldTime is how long the two-handed open-palm pose must be held
	// before Stop fires.
	StopHoldTime float64
	// BufferWindow is the trailing window of index-tip positions kept per
	// hand for arc detection.
	BufferWindow float64
	// MinArcAngle is the minimum angular span, in radians, each hand's
	// index tip must trace within BufferWindow for Resume to consider
	// firing.
	MinArcAngle float64
	// TipConnectionThreshold is the max distance between the two index
	// tips for Resume to fire.
	TipConnectionThreshold float64
	// ResumeCooldown is the minimum time between successive Resume fires.
	ResumeCooldown float64
}

// Validate checks the configuration for invalid values.
func (c StopResumeConfig) Validate() error {
	if c.StopHoldTime < 0 {
		return fmt.Errorf("gesture: stop_hold_time must be >= 0, got %.4f", c.StopHoldTime)
	}
	if c.BufferWindow <= 0 {
		return fmt.Errorf("gesture: stop/resume buffer_window must be > 0, got %.4f", c.BufferWindow)
	}
	if c.MinArcAngle <= 0 {
		return fmt.Errorf("gesture: stop/resume min_arc_angle must be > 0, got %.4f", c.MinArcAngle)
	}
	if c.TipConnectionThreshold <= 0 {
		return fmt.Errorf("gesture: stop/resume tip_connection_threshold must be > 0, got %.4f", c.TipConnectionThreshold)
	}
	if c.ResumeCooldown < 0 {
		return fmt.Errorf("gesture: resume_cooldown must be >= 0, got %.4f", c.ResumeCooldown)
	}
	return nil
}

// StopResume is the two-handed supervisor gating the global pause flag: an
// open-palm two-hand hold fires Stop, and a two-handed circling motion that
// brings both index tips together fires Resume.
type StopResume struct {
	cfg StopResumeConfig

	stopHeld  bool
	stopStart float64
	paused    bool

	leftBuf  []handpilot.PositionSample
	rightBuf []handpilot.PositionSample

	lastResume float64
}

// NewStopResume creates a StopResume machine. Returns an error if cfg is
// invalid.
func NewStopResume(cfg StopResumeConfig) (*StopResume, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &StopResume{cfg: cfg, lastResume: -1e9}, nil
}

// Paused reports whether the supervisor currently considers input paused.
func (s *StopResume) Paused() bool {
	return s.paused
}

func openPalmPose(h handpilot.Hand) bool {
	tips := [5]int{handpilot.ThumbTip, handpilot.IndexTip, handpilot.MiddleTip, handpilot.RingTip, handpilot.PinkyTip}
	pips := [5]int{handpilot.ThumbIP, handpilot.IndexPIP, handpilot.MiddlePIP, handpilot.RingPIP, handpilot.PinkyPIP}
	for i, tip := range tips {
		if !handpilot.FingerExtended(h.Lm(tip), h.Lm(pips[i]), 0) {
			return false
		}
	}
	return handpilot.PalmFacingUp(h)
}

func pushSample(buf []handpilot.PositionSample, lm handpilot.Landmark, now, window float64) []handpilot.PositionSample {
	buf = append(buf, handpilot.PositionSample{X: lm.X, Y: lm.Y, T: now})
	cut := 0
	for cut < len(buf) && now-buf[cut].T > window {
		cut++
	}
	return buf[cut:]
}

// Update implements Machine. While paused, only the open-palm Stop pose is
// ignored (input is already stopped) and Resume detection continues to run.
func (s *StopResume) Update(snap handpilot.Snapshot) []handpilot.Event {
	left, leftOK := snap.ByLabel(handpilot.HandLeft)
	right, rightOK := snap.ByLabel(handpilot.HandRight)

	var events []handpilot.Event

	if !s.paused {
		bothOpen := leftOK && rightOK && openPalmPose(left) && openPalmPose(right)
		if !bothOpen {
			s.stopHeld = false
		} else if !s.stopHeld {
			s.stopHeld = true
			s.stopStart = snap.T
		} else if snap.T-s.stopStart >= s.cfg.StopHoldTime {
			s.paused = true
			s.stopHeld = false
			s.leftBuf = nil
			s.rightBuf = nil
			return append(events, handpilot.StopEvent)
		}
		return events
	}

	if leftOK {
		s.leftBuf = pushSample(s.leftBuf, left.Lm(handpilot.IndexTip), snap.T, s.cfg.BufferWindow)
	}
	if rightOK {
		s.rightBuf = pushSample(s.rightBuf, right.Lm(handpilot.IndexTip), snap.T, s.cfg.BufferWindow)
	}

	if !leftOK || !rightOK {
		return events
	}
	if snap.T-s.lastResume < s.cfg.ResumeCooldown {
		return events
	}

	leftArc := handpilot.ArcSpan(s.leftBuf, snap.T, s.cfg.BufferWindow)
	rightArc := handpilot.ArcSpan(s.rightBuf, snap.T, s.cfg.BufferWindow)
	if leftArc < s.cfg.MinArcAngle || rightArc < s.cfg.MinArcAngle {
		return events
	}

	if handpilot.Dist3(left.Lm(handpilot.IndexTip), right.Lm(handpilot.IndexTip)) > s.cfg.TipConnectionThreshold {
		return events
	}

	s.paused = false
	s.lastResume = snap.T
	s.leftBuf = nil
	s.rightBuf = nil
	return append(events, handpilot.ResumeEvent)
}
