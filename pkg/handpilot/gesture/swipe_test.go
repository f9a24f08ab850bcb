package gesture

import (
	"testing"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

func testSwipeCfg() SwipeConfig {
	return SwipeConfig{RaiseThr: 0, PairThr: 0.1, Hold: 0.1, MinDist: 0.1}
}

func swipeHand(label handpilot.Handedness, midX, midY float64) handpilot.Hand {
	var h handpilot.Hand
	h.Label = label
	h.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: midX - 0.02, Y: midY}
	h.Landmarks[handpilot.IndexPIP] = handpilot.Landmark{X: midX - 0.02, Y: midY + 0.2}
	h.Landmarks[handpilot.MiddleTip] = handpilot.Landmark{X: midX, Y: midY}
	h.Landmarks[handpilot.MiddlePIP] = handpilot.Landmark{X: midX, Y: midY + 0.2}
	h.Landmarks[handpilot.RingTip] = handpilot.Landmark{X: midX + 0.02, Y: midY}
	h.Landmarks[handpilot.RingPIP] = handpilot.Landmark{X: midX + 0.02, Y: midY + 0.2}
	h.Landmarks[handpilot.PinkyTip] = handpilot.Landmark{X: midX + 0.04, Y: midY}
	h.Landmarks[handpilot.PinkyPIP] = handpilot.Landmark{X: midX + 0.04, Y: midY + 0.2}
	return h
}

func TestSwipeRightFiresCtrlRight(t *testing.T) {
	s, err := NewSwipe(testSwipeCfg())
	if err != nil {
		t.Fatalf("NewSwipe: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{swipeHand(handpilot.HandRight, 0.3, 0.3)}}
	if events := s.Update(snap); events != nil {
		t.Fatalf("expected no event on pose entry, got %v", events)
	}

	snap.T = 0.2
	snap.Hands[0] = swipeHand(handpilot.HandRight, 0.5, 0.3)
	events := s.Update(snap)
	if len(events) != 1 || events[0].Kind != handpilot.EventCtrlRight {
		t.Fatalf("expected a CtrlRight event, got %v", events)
	}
}

func TestSwipeFiresOnceUntilPoseBreaks(t *testing.T) {
	s, err := NewSwipe(testSwipeCfg())
	if err != nil {
		t.Fatalf("NewSwipe: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{swipeHand(handpilot.HandLeft, 0.3, 0.3)}}
	s.Update(snap)

	snap.T = 0.2
	snap.Hands[0] = swipeHand(handpilot.HandLeft, 0.1, 0.3)
	events := s.Update(snap)
	if len(events) != 1 || events[0].Kind != handpilot.EventCtrlLeft {
		t.Fatalf("expected a CtrlLeft event, got %v", events)
	}

	snap.T = 0.3
	events = s.Update(snap)
	if events != nil {
		t.Fatalf("expected no repeat fire while pose is held, got %v", events)
	}

	var empty handpilot.Hand
	snap.T = 0.4
	snap.Hands[0] = empty
	s.Update(snap)

	snap.T = 0.6
	snap.Hands[0] = swipeHand(handpilot.HandLeft, 0.3, 0.3)
	s.Update(snap)
	snap.T = 0.8
	snap.Hands[0] = swipeHand(handpilot.HandLeft, 0.1, 0.3)
	events = s.Update(snap)
	if len(events) != 1 || events[0].Kind != handpilot.EventCtrlLeft {
		t.Fatalf("expected a fresh fire after re-arming, got %v", events)
	}
}

func TestSwipeVerticalMotionIgnored(t *testing.T) {
	s, err := NewSwipe(testSwipeCfg())
	if err != nil {
		t.Fatalf("NewSwipe: %v", err)
	}

	snap := handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{swipeHand(handpilot.HandRight, 0.3, 0.3)}}
	s.Update(snap)

	snap.T = 0.2
	snap.Hands[0] = swipeHand(handpilot.HandRight, 0.3, 0.5)
	events := s.Update(snap)
	if events != nil {
		t.Fatalf("expected no event for a purely vertical displacement, got %v", events)
	}
}
