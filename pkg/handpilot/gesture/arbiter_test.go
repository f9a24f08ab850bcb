package gesture

import (
	"math"
	"testing"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

type fakeSink struct {
	events []handpilot.Event
}

func (f *fakeSink) Emit(e handpilot.Event) {
	f.events = append(f.events, e)
}

type fixedCursor struct{}

func (fixedCursor) Update(tip handpilot.Landmark) (int, int) {
	return int(tip.X * 100), int(tip.Y * 100)
}

func testArbiterConfig() ArbiterConfig {
	return ArbiterConfig{
		Pinch:      PinchConfig{PinchThr: 0.05, ReleaseThr: 0.08, HoldDelay: 0.3},
		Scroll:     ScrollConfig{RaiseThr: 0, PairThr: 0.05, MinDelta: 0.01, Sensitivity: 5},
		Swipe:      SwipeConfig{RaiseThr: 0, PairThr: 0.05, Hold: 0.1, MinDist: 0.1},
		PalmArrow:  PalmArrowConfig{RaiseThr: 0, TightThr: 0.05, Hold: 0.3, Cooldown: 1},
		Frame:      FrameConfig{ActivationTime: 1.0, Cooldown: 2.0},
		CopyPaste:  CopyPasteConfig{HoldDuration: 1.0, BundleRadius: 0.05, OpenThr: 0.3, SpreadMinDist: 0.08},
		StopResume: StopResumeConfig{StopHoldTime: 1.0, BufferWindow: 1.0, MinArcAngle: 1.5, TipConnectionThreshold: 0.06, ResumeCooldown: 0.5},
	}
}

func idleHand() handpilot.Hand {
	var h handpilot.Hand
	h.Landmarks[handpilot.ThumbTip] = handpilot.Landmark{X: 0.2, Y: 0.2}
	h.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: 0.6, Y: 0.6}
	h.Landmarks[handpilot.IndexPIP] = handpilot.Landmark{X: 0.6, Y: 0.7}
	h.Landmarks[handpilot.MiddleTip] = handpilot.Landmark{X: 0.65, Y: 0.5}
	h.Landmarks[handpilot.MiddlePIP] = handpilot.Landmark{X: 0.65, Y: 0.4}
	h.Landmarks[handpilot.RingTip] = handpilot.Landmark{X: 0.7, Y: 0.5}
	h.Landmarks[handpilot.RingPIP] = handpilot.Landmark{X: 0.7, Y: 0.4}
	h.Landmarks[handpilot.PinkyTip] = handpilot.Landmark{X: 0.75, Y: 0.5}
	h.Landmarks[handpilot.PinkyPIP] = handpilot.Landmark{X: 0.75, Y: 0.4}
	return h
}

func TestArbiterMovesCursorOnIdlePose(t *testing.T) {
	sink := &fakeSink{}
	arb, err := NewArbiter(testArbiterConfig(), fixedCursor{}, sink)
	if err != nil {
		t.Fatalf("NewArbiter: %v", err)
	}

	hand := idleHand()
	arb.Update(handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{hand}})

	found := false
	for _, e := range sink.events {
		if e.Kind == handpilot.EventMove {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Move event, got %v", sink.events)
	}
}

func containsKind(events []handpilot.Event, kind handpilot.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestArbiterStopThenResumeRestoresEventFlow(t *testing.T) {
	sink := &fakeSink{}
	arb, err := NewArbiter(testArbiterConfig(), fixedCursor{}, sink)
	if err != nil {
		t.Fatalf("NewArbiter: %v", err)
	}

	palms := []handpilot.Hand{openPalmHand(handpilot.HandLeft), openPalmHand(handpilot.HandRight)}
	arb.Update(handpilot.Snapshot{T: 0, Hands: palms})
	arb.Update(handpilot.Snapshot{T: 1.1, Hands: palms})
	if !containsKind(sink.events, handpilot.EventStop) {
		t.Fatalf("expected Stop after the two-handed hold, got %v", sink.events)
	}

	// A pinch sequence that would normally click must emit nothing while
	// paused.
	sink.events = nil
	arb.Update(handpilot.Snapshot{T: 1.2, Hands: []handpilot.Hand{pinchedHand(0.02)}})
	arb.Update(handpilot.Snapshot{T: 1.3, Hands: []handpilot.Hand{pinchedHand(0.09)}})
	if len(sink.events) != 0 {
		t.Fatalf("expected nothing while paused, got %v", sink.events)
	}

	// Both index tips trace arcs and meet: Resume.
	for i := 0; i < 10; i++ {
		angle := float64(i) / 9 * math.Pi
		leftTip := handpilot.Landmark{
			X: 0.4 + 0.05*math.Cos(angle),
			Y: 0.4 + 0.05*math.Sin(angle),
		}
		var left, right handpilot.Hand
		left.Label = handpilot.HandLeft
		left.Landmarks[handpilot.IndexTip] = leftTip
		right.Label = handpilot.HandRight
		right.Landmarks[handpilot.IndexTip] = handpilot.Landmark{X: leftTip.X + 0.01, Y: leftTip.Y}

		arb.Update(handpilot.Snapshot{T: 2.0 + float64(i)*0.05, Hands: []handpilot.Hand{left, right}})
	}
	if !containsKind(sink.events, handpilot.EventResume) {
		t.Fatalf("expected Resume after the arc gesture, got %v", sink.events)
	}

	// The same pinch sequence clicks again once resumed.
	sink.events = nil
	arb.Update(handpilot.Snapshot{T: 3.0, Hands: []handpilot.Hand{pinchedHand(0.02)}})
	arb.Update(handpilot.Snapshot{T: 3.1, Hands: []handpilot.Hand{pinchedHand(0.09)}})
	if !containsKind(sink.events, handpilot.EventClick) {
		t.Fatalf("expected Click after resume, got %v", sink.events)
	}
}

func TestArbiterSuppressesEverythingWhenPaused(t *testing.T) {
	sink := &fakeSink{}
	arb, err := NewArbiter(testArbiterConfig(), fixedCursor{}, sink)
	if err != nil {
		t.Fatalf("NewArbiter: %v", err)
	}
	arb.stopResume.paused = true

	hand := idleHand()
	arb.Update(handpilot.Snapshot{T: 0, Hands: []handpilot.Hand{hand}})

	if len(sink.events) != 0 {
		t.Fatalf("expected no events while paused, got %v", sink.events)
	}
}
