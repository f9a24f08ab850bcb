// Package handpilot turns camera-observed hand landmarks into host input
// events: a per-frame Snapshot of hands and 3-D landmarks is classified by
// the gesture package into discrete Events, which the Dispatcher serialises
// onto an input backend.
package handpilot

import "fmt"

// Handedness labels which hand a Hand belongs to.
type Handedness int

const (
	// HandUnknown means the tracker did not report a label.
	HandUnknown Handedness = iota
	HandLeft
	HandRight
)

func (h Handedness) String() string {
	switch h {
	case HandLeft:
		return "Left"
	case HandRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Landmark indices, per the MediaPipe Hands convention: 21 points per hand,
// x/y normalised to the image frame (origin top-left), z relative to the
// wrist.
const (
	Wrist = 0

	ThumbMCP = 2
	ThumbIP  = 3
	ThumbTip = 4

	IndexMCP = 5
	IndexPIP = 6
	IndexTip = 8

	MiddlePIP = 10
	MiddleTip = 12

	RingPIP = 14
	RingTip = 16

	PinkyPIP = 18
	PinkyTip = 20
)

// NumLandmarks is the fixed landmark count MediaPipe Hands reports per hand.
const NumLandmarks = 21

// Landmark is a single 3-D keypoint in normalised image space.
type Landmark struct {
	X, Y, Z float64
}

// Hand is one tracked hand: its handedness label, detection confidence, and
// its 21 landmarks addressed by the well-known indices above.
type Hand struct {
	Label     Handedness
	Score     float64
	Landmarks [NumLandmarks]Landmark
}

// Lm returns the landmark at the given well-known index.
func (h Hand) Lm(idx int) Landmark {
	return h.Landmarks[idx]
}

// Snapshot is an immutable per-frame value: a monotonic timestamp and the
// hands visible in that frame, in tracker-reported order. Successive
// snapshots are not assumed regularly spaced.
type Snapshot struct {
	// T is a monotonic-clock timestamp in seconds. Never derived from the
	// wall clock or from a frame counter.
	T     float64
	Hands []Hand
}

// Primary returns the hand the arbiter treats as primary for this frame,
// along with whether one was present. Per spec this is hands[0] as reported
// by the tracker.
func (s Snapshot) Primary() (Hand, bool) {
	if len(s.Hands) == 0 {
		return Hand{}, false
	}
	return s.Hands[0], true
}

// ByLabel returns the first hand in the snapshot with the given label.
func (s Snapshot) ByLabel(label Handedness) (Hand, bool) {
	for _, h := range s.Hands {
		if h.Label == label {
			return h, true
		}
	}
	return Hand{}, false
}

// String renders a compact description, useful in verbose logging.
func (s Snapshot) String() string {
	return fmt.Sprintf("Snapshot{t=%.3f hands=%d}", s.T, len(s.Hands))
}
