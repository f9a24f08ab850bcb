package handpilot

import (
	"math"
	"sort"
)

// Dist3 returns the Euclidean distance between two landmarks in normalised
// landmark space.
func Dist3(a, b Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// FingerExtended reports whether tip is above pip by at least eps. Image y
// increases downward, so "tip above pip" means tip.Y is the smaller value.
func FingerExtended(tip, pip Landmark, eps float64) bool {
	return tip.Y+eps < pip.Y
}

// fingertips returns the five fingertip landmarks of a hand in thumb, index,
// middle, ring, pinky order.
func fingertips(h Hand) [5]Landmark {
	return [5]Landmark{
		h.Lm(ThumbTip),
		h.Lm(IndexTip),
		h.Lm(MiddleTip),
		h.Lm(RingTip),
		h.Lm(PinkyTip),
	}
}

// PalmFacingUp reports whether the wrist sits at least 0.02 below the mean y
// of the five fingertips (palm-up orientation in image space).
func PalmFacingUp(h Hand) bool {
	tips := fingertips(h)
	var sumY float64
	for _, t := range tips {
		sumY += t.Y
	}
	meanY := sumY / float64(len(tips))
	return h.Lm(Wrist).Y-meanY >= 0.02
}

// HandOpenness is the mean distance from the wrist to each fingertip.
func HandOpenness(h Hand) float64 {
	wrist := h.Lm(Wrist)
	tips := fingertips(h)
	var sum float64
	for _, t := range tips {
		sum += Dist3(wrist, t)
	}
	return sum / float64(len(tips))
}

// adjacentTipPairs returns the four adjacent fingertip pairs used by
// FingersTight/FingersSpread: thumb-index, index-middle, middle-ring,
// ring-pinky.
func adjacentTipPairs(h Hand) [4][2]Landmark {
	return [4][2]Landmark{
		{h.Lm(ThumbTip), h.Lm(IndexTip)},
		{h.Lm(IndexTip), h.Lm(MiddleTip)},
		{h.Lm(MiddleTip), h.Lm(RingTip)},
		{h.Lm(RingTip), h.Lm(PinkyTip)},
	}
}

// FingersTight reports whether every adjacent fingertip pair is within
// maxPairDist of each other.
func FingersTight(h Hand, maxPairDist float64) bool {
	for _, pair := range adjacentTipPairs(h) {
		if Dist3(pair[0], pair[1]) > maxPairDist {
			return false
		}
	}
	return true
}

// FingersSpread reports whether every adjacent fingertip pair exceeds
// minPairDist.
func FingersSpread(h Hand, minPairDist float64) bool {
	for _, pair := range adjacentTipPairs(h) {
		if Dist3(pair[0], pair[1]) < minPairDist {
			return false
		}
	}
	return true
}

// PositionSample is one entry in the sliding position buffer used by
// ArcSpan: a 2-D position with a monotonic timestamp.
type PositionSample struct {
	X, Y, T float64
}

// minArcRadius is the floor below which a position buffer is considered
// stationary rather than tracing an arc.
const minArcRadius = 0.015

// ArcSpan restricts positions to those within windowS of now, computes their
// centroid, and returns the angular span in radians of the set about that
// centroid. It returns 0 if fewer than five points fall in the window, or if
// the mean radius about the centroid is below a floor (no real motion).
func ArcSpan(positions []PositionSample, now, windowS float64) float64 {
	var recent []PositionSample
	for _, p := range positions {
		if now-p.T <= windowS {
			recent = append(recent, p)
		}
	}
	if len(recent) < 5 {
		return 0
	}

	var cx, cy float64
	for _, p := range recent {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(recent))
	cy /= float64(len(recent))

	var meanR float64
	angles := make([]float64, len(recent))
	for i, p := range recent {
		dx, dy := p.X-cx, p.Y-cy
		meanR += math.Hypot(dx, dy)
		angles[i] = math.Atan2(dy, dx)
	}
	meanR /= float64(len(recent))
	if meanR < minArcRadius {
		return 0
	}

	// The angular span of the set is 2π minus its largest gap, not
	// max(angle)-min(angle): atan2 wraps at ±π, so a tight arc that happens
	// to straddle that seam would otherwise read as a span near 2π instead
	// of its true, small extent.
	sort.Float64s(angles)
	largestGap := angles[0] + 2*math.Pi - angles[len(angles)-1]
	for i := 1; i < len(angles); i++ {
		if gap := angles[i] - angles[i-1]; gap > largestGap {
			largestGap = gap
		}
	}
	return 2*math.Pi - largestGap
}
