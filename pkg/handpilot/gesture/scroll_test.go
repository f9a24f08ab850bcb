package gesture

import (
	"testing"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

func testScrollCfg() ScrollConfig {
	return ScrollConfig{RaiseThr: 0, PairThr: 0.1, MinDelta: 0.01, Sensitivity: 5}
}

func scrollPoseHand(indexMiddleY float64) handpilot.Hand {
	var h handpilot.Hand
	h.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: 0.5, Y: indexMiddleY}
	h.Landmarks[handpilot.IndexPIP] = handpilot.Landmark{X: 0.5, Y: indexMiddleY + 0.2}
	h.Landmarks[handpilot.MiddleTip] = handpilot.Landmark{X: 0.51, Y: indexMiddleY}
	h.Landmarks[handpilot.MiddlePIP] = handpilot.Landmark{X: 0.51, Y: indexMiddleY + 0.2}
	h.Landmarks[handpilot.RingTip] = handpilot.Landmark{X: 0.6, Y: 0.7}
	h.Landmarks[handpilot.RingPIP] = handpilot.Landmark{X: 0.6, Y: 0.5}
	h.Landmarks[handpilot.PinkyTip] = handpilot.Landmark{X: 0.65, Y: 0.7}
	h.Landmarks[handpilot.PinkyPIP] = handpilot.Landmark{X: 0.65, Y: 0.5}
	return h
}

func TestScrollFirstFrameEstablishesReference(t *testing.T) {
	s, err := NewScroll(testScrollCfg())
	if err != nil {
		t.Fatalf("NewScroll: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{scrollPoseHand(0.3)}}
	events := s.Update(snap)
	if events != nil {
		t.Fatalf("expected no event on the first pose frame, got %v", events)
	}
	if !s.IsScrolling() {
		t.Fatal("expected IsScrolling true while pose is active")
	}
}

func TestScrollEmitsDeltaOnSustainedMotion(t *testing.T) {
	s, err := NewScroll(testScrollCfg())
	if err != nil {
		t.Fatalf("NewScroll: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{scrollPoseHand(0.3)}}
	s.Update(snap)

	snap.T = 0.1
	snap.Hands[0] = scrollPoseHand(0.4)
	events := s.Update(snap)
	if len(events) != 1 || events[0].Kind != handpilot.EventScroll {
		t.Fatalf("expected a Scroll event, got %v", events)
	}
	if events[0].Dy >= 0 {
		t.Fatalf("expected negative Dy for downward hand motion, got %f", events[0].Dy)
	}
}

func TestScrollStopsWhenPoseBreaks(t *testing.T) {
	s, err := NewScroll(testScrollCfg())
	if err != nil {
		t.Fatalf("NewScroll: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{scrollPoseHand(0.3)}}
	s.Update(snap)

	var fist handpilot.Hand
	snap.T = 0.1
	snap.Hands[0] = fist
	s.Update(snap)
	if s.IsScrolling() {
		t.Fatal("expected IsScrolling false once the pose breaks")
	}
}
