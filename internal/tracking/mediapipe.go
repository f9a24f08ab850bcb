// Package tracking adapts MediaPipe's hand-landmark solution to the
// handpilot.HandTracker boundary via a small cgo bridge, the same
// mediapipe-through-cgo approach the camera pipeline's inference stage has
// always used.
package tracking

// #cgo pkg-config: mediapipe_c
// #include <stdlib.h>
// #include "mediapipe_hands.h"
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/sarinacheng/handpilot/pkg/handpilot"
)

// MediaPipeHands wraps a single mediapipe hand-landmark graph instance. Not
// safe for concurrent use; the main loop calls Infer from one goroutine.
type MediaPipeHands struct {
	ctx *C.mp_hands_ctx
}

// Config mirrors the knobs the original Python tracker exposed.
type Config struct {
	MaxHands               int
	MinDetectionConfidence float64
	MinTrackingConfidence  float64
}

// New starts a MediaPipe hand-landmark graph instance.
func New(cfg Config) (*MediaPipeHands, error) {
	ctx := C.mp_hands_create(
		C.int(cfg.MaxHands),
		C.double(cfg.MinDetectionConfidence),
		C.double(cfg.MinTrackingConfidence),
	)
	if ctx == nil {
		return nil, fmt.Errorf("tracking: failed to initialise mediapipe hands graph")
	}
	return &MediaPipeHands{ctx: ctx}, nil
}

// Infer implements handpilot.HandTracker: it feeds one RGB frame through the
// graph and converts the C result struct into a Snapshot.
func (m *MediaPipeHands) Infer(frame []byte, width, height int, t float64) (handpilot.Snapshot, error) {
	if len(frame) == 0 {
		return handpilot.Snapshot{T: t}, nil
	}

	var result C.mp_hands_result
	rc := C.mp_hands_process(
		m.ctx,
		(*C.uchar)(unsafe.Pointer(&frame[0])),
		C.int(width),
		C.int(height),
		&result,
	)
	defer C.mp_hands_result_free(&result)

	if rc != 0 {
		return handpilot.Snapshot{}, fmt.Errorf("tracking: mediapipe inference failed (rc=%d)", rc)
	}

	snap := handpilot.Snapshot{T: t}
	n := int(result.num_hands)
	for i := 0; i < n; i++ {
		cHand := (*[1 << 8]C.mp_hand_t)(unsafe.Pointer(result.hands))[i]

		var hand handpilot.Hand
		hand.Score = float64(cHand.score)
		switch int(cHand.label) {
		case 1:
			hand.Label = handpilot.HandLeft
		case 2:
			hand.Label = handpilot.HandRight
		default:
			hand.Label = handpilot.HandUnknown
		}

		for j := 0; j < handpilot.NumLandmarks; j++ {
			lm := cHand.landmarks[j]
			hand.Landmarks[j] = handpilot.Landmark{
				X: float64(lm.x),
				Y: float64(lm.y),
				Z: float64(lm.z),
			}
		}

		snap.Hands = append(snap.Hands, hand)
	}

	return snap, nil
}

// Close releases the underlying graph instance.
func (m *MediaPipeHands) Close() error {
	C.mp_hands_destroy(m.ctx)
	return nil
}
