package gesture

import (
	"testing"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

func bundledHand() handpilot.Hand {
	var h handpilot.Hand
	center := handpilot.Landmark{X: 0.5, Y: 0.5, Z: 0}
	h.Landmarks[handpilot.ThumbTip] = handpilot.Landmark{X: 0.51, Y: 0.50}
	h.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: 0.50, Y: 0.51}
	h.Landmarks[handpilot.MiddleTip] = center
	h.Landmarks[handpilot.RingTip] = handpilot.Landmark{X: 0.49, Y: 0.51}
	h.Landmarks[handpilot.PinkyTip] = handpilot.Landmark{X: 0.49, Y: 0.49}
	return h
}

func spreadHand() handpilot.Hand {
	var h handpilot.Hand
	h.Landmarks[handpilot.ThumbTip] = handpilot.Landmark{X: 0.1, Y: 0.4}
	h.Landmarks[handpilot.ThumbIP] = handpilot.Landmark{X: 0.15, Y: 0.5}
	h.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: 0.3, Y: 0.1}
	h.Landmarks[handpilot.IndexPIP] = handpilot.Landmark{X: 0.3, Y: 0.3}
	h.Landmarks[handpilot.MiddleTip] = handpilot.Landmark{X: 0.5, Y: 0.05}
	h.Landmarks[handpilot.MiddlePIP] = handpilot.Landmark{X: 0.5, Y: 0.3}
	h.Landmarks[handpilot.RingTip] = handpilot.Landmark{X: 0.7, Y: 0.1}
	h.Landmarks[handpilot.RingPIP] = handpilot.Landmark{X: 0.7, Y: 0.3}
	h.Landmarks[handpilot.PinkyTip] = handpilot.Landmark{X: 0.9, Y: 0.4}
	h.Landmarks[handpilot.PinkyPIP] = handpilot.Landmark{X: 0.85, Y: 0.5}
	h.Landmarks[handpilot.Wrist] = handpilot.Landmark{X: 0.5, Y: 0.9}
	return h
}

func testCopyPasteCfg() CopyPasteConfig {
	return CopyPasteConfig{
		HoldDuration:  1.0,
		BundleRadius:  0.05,
		OpenThr:       0.3,
		SpreadMinDist: 0.08,
	}
}

func TestCopyFiresAfterHold(t *testing.T) {
	cp, err := NewCopyPaste(testCopyPasteCfg())
	if err != nil {
		t.Fatalf("NewCopyPaste: %v", err)
	}

	hand := bundledHand()
	snap := func(tm float64) handpilot.Snapshot {
		return handpilot.Snapshot{T: tm, Hands: []handpilot.Hand{hand}}
	}

	if events := cp.Update(snap(0)); len(events) != 0 {
		t.Fatalf("expected no event on first bundled frame, got %v", events)
	}
	if events := cp.Update(snap(0.5)); len(events) != 0 {
		t.Fatalf("expected no event before hold duration, got %v", events)
	}
	events := cp.Update(snap(1.1))
	if len(events) != 1 || events[0].Kind != handpilot.EventCopy {
		t.Fatalf("expected Copy at 1.1s, got %v", events)
	}
}

func TestPasteFiresAfterHold(t *testing.T) {
	cp, err := NewCopyPaste(testCopyPasteCfg())
	if err != nil {
		t.Fatalf("NewCopyPaste: %v", err)
	}

	hand := spreadHand()
	if !cp.isSpread(hand) {
		t.Fatal("expected synthetic hand to classify as spread")
	}

	snap := func(tm float64) handpilot.Snapshot {
		return handpilot.Snapshot{T: tm, Hands: []handpilot.Hand{hand}}
	}

	cp.Update(snap(0))
	events := cp.Update(snap(1.2))
	if len(events) != 1 || events[0].Kind != handpilot.EventPaste {
		t.Fatalf("expected Paste at 1.2s, got %v", events)
	}
}

func TestSwitchingShapeCancelsHold(t *testing.T) {
	cp, err := NewCopyPaste(testCopyPasteCfg())
	if err != nil {
		t.Fatalf("NewCopyPaste: %v", err)
	}

	bundled := bundledHand()
	spread := spreadHand()

	cp.Update(handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{bundled}})
	cp.Update(handpilot.Snapshot{T: 0.8, Hands: []handpilot.Hand{spread}})
	events := cp.Update(handpilot.Snapshot{T: 0.9, Hands: []handpilot.Hand{bundled}})
	if len(events) != 0 {
		t.Fatalf("expected switching shape to reset the hold, got %v", events)
	}
}
