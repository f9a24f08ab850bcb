package handpilot

import (
	"math"
	"sync"
)

// axisFilter is a one-euro filter on a single landmark coordinate: a
// low-pass whose cutoff rises with the signal's speed, so slow tracker
// jitter is damped hard while fast deliberate motion tracks with little
// lag. It sits upstream of the gesture machines, on the tracker boundary;
// the machines themselves see the filtered snapshots as their raw input.
type axisFilter struct {
	minCutoff float64
	beta      float64
	dCutoff   float64

	x           float64
	dx          float64
	lastT       float64
	initialized bool
}

// newAxisFilter maps the single smoothing factor in [0,1] onto the filter's
// minimum cutoff: factor 0 pins the cutoff near zero (heavy damping),
// factor 1 raises it far enough that the filter barely intervenes. The
// speed coefficient and derivative cutoff stay fixed; one tunable knob is
// all the config surface offers.
func newAxisFilter(smoothingFactor float64) *axisFilter {
	return &axisFilter{
		minCutoff: 0.1 + 5.0*smoothingFactor,
		beta:      0.05,
		dCutoff:   1.0,
	}
}

// cutoffAlpha converts a cutoff frequency and sample interval into the
// equivalent low-pass blend weight.
func cutoffAlpha(cutoff, dt float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	return dt / (dt + tau)
}

func (f *axisFilter) update(measurement, t float64) float64 {
	if !f.initialized {
		f.x = measurement
		f.lastT = t
		f.initialized = true
		return measurement
	}

	dt := t - f.lastT
	if dt <= 0 {
		// Replayed or out-of-order timestamp: hold the last estimate.
		return f.x
	}
	f.lastT = t

	rate := (measurement - f.x) / dt
	f.dx += cutoffAlpha(f.dCutoff, dt) * (rate - f.dx)

	cutoff := f.minCutoff + f.beta*math.Abs(f.dx)
	f.x += cutoffAlpha(cutoff, dt) * (measurement - f.x)
	return f.x
}

func (f *axisFilter) reset() {
	f.x, f.dx, f.lastT, f.initialized = 0, 0, 0, false
}

// landmarkFilter smooths one landmark's three axes independently.
type landmarkFilter struct {
	x, y, z *axisFilter
}

func newLandmarkFilter(smoothingFactor float64) *landmarkFilter {
	return &landmarkFilter{
		x: newAxisFilter(smoothingFactor),
		y: newAxisFilter(smoothingFactor),
		z: newAxisFilter(smoothingFactor),
	}
}

func (f *landmarkFilter) update(lm Landmark, t float64) Landmark {
	return Landmark{X: f.x.update(lm.X, t), Y: f.y.update(lm.Y, t), Z: f.z.update(lm.Z, t)}
}

func (f *landmarkFilter) reset() {
	f.x.reset()
	f.y.reset()
	f.z.reset()
}

// LandmarkSmoother applies per-landmark one-euro smoothing across a stream
// of hands, keyed by (hand slot, landmark index) so a hand that drops out
// and reappears gets a fresh filter rather than a stale one from a
// different physical hand.
type LandmarkSmoother struct {
	mu      sync.Mutex
	factor  float64
	filters map[[2]int]*landmarkFilter
}

// NewLandmarkSmoother creates a smoother with the given smoothing factor in
// [0,1]: 0 is maximum smoothing (slow response), 1 is no smoothing.
func NewLandmarkSmoother(smoothingFactor float64) *LandmarkSmoother {
	return &LandmarkSmoother{
		factor:  smoothingFactor,
		filters: make(map[[2]int]*landmarkFilter),
	}
}

// Smooth returns a copy of the snapshot with every landmark passed through
// its filter. Hand order and labels are preserved.
func (s *LandmarkSmoother) Smooth(snap Snapshot) Snapshot {
	if s.factor >= 1 {
		return snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := Snapshot{T: snap.T, Hands: make([]Hand, len(snap.Hands))}
	for slot, h := range snap.Hands {
		nh := h
		for idx := range h.Landmarks {
			key := [2]int{slot, idx}
			f, ok := s.filters[key]
			if !ok {
				f = newLandmarkFilter(s.factor)
				s.filters[key] = f
			}
			nh.Landmarks[idx] = f.update(h.Landmarks[idx], snap.T)
		}
		out.Hands[slot] = nh
	}
	return out
}

// Reset clears all filter state.
func (s *LandmarkSmoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.filters {
		f.reset()
	}
}
