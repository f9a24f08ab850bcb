// Command handpilot runs the camera-to-gesture-to-input pipeline: it reads
// frames from a webcam, infers hand landmarks, classifies gestures, and
// dispatches the resulting events to either the local desktop or a paired
// Bluetooth HID host.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarinacheng/handpilot/internal/capture"
	"github.com/sarinacheng/handpilot/internal/config"
	"github.com/sarinacheng/handpilot/internal/tracking"
	"github.com/sarinacheng/handpilot/pkg/handpilot"
	"github.com/sarinacheng/handpilot/pkg/handpilot/backend"
	"github.com/sarinacheng/handpilot/pkg/handpilot/clipboard"
	"github.com/sarinacheng/handpilot/pkg/handpilot/gesture"
)

// defaultTrackingConfig mirrors the detection/tracking confidence defaults
// the original hand_tracker.py used.
func newHandTracker() (*tracking.MediaPipeHands, error) {
	return tracking.New(tracking.Config{
		MaxHands:               2,
		MinDetectionConfidence: 0.7,
		MinTrackingConfidence:  0.5,
	})
}

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "handpilot - hand-gesture input control\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("handpilot: %v", err)
	}

	tracker, err := newHandTracker()
	if err != nil {
		log.Fatalf("handpilot: hand tracker: %v", err)
	}
	defer tracker.Close()

	cam, err := capture.NewCamera(cfg.Camera.DeviceID, cfg.Camera.Width, cfg.Camera.Height)
	if err != nil {
		log.Fatalf("handpilot: camera: %v", err)
	}
	defer cam.Close()

	be, err := newBackend(cfg.Backend)
	if err != nil {
		log.Fatalf("handpilot: backend: %v", err)
	}

	dispatcher := handpilot.NewDispatcher(be, handpilot.DefaultQueueDepth)
	defer dispatcher.Shutdown()

	if cfg.Relay.Enabled {
		bridge, err := clipboard.Dial(cfg.Relay.URL, cfg.Relay.SessionID, cfg.Relay.Name, clipboard.OSClipboard{})
		if err != nil {
			log.Printf("handpilot: clipboard relay disabled: %v", err)
		} else {
			defer bridge.Close()
			dispatcher.OnCopy = bridge.SendLocalClipboard
		}
	}

	cursor, err := handpilot.NewCursorMapper(handpilot.CursorConfig{
		ScreenW: cfg.Cursor.ScreenWidth,
		ScreenH: cfg.Cursor.ScreenHeight,
		ROIXMin: cfg.Cursor.ROIMinX,
		ROIXMax: cfg.Cursor.ROIMaxX,
		ROIYMin: cfg.Cursor.ROIMinY,
		ROIYMax: cfg.Cursor.ROIMaxY,
		Gain:    cfg.Cursor.Gain,
		Alpha:   cfg.Cursor.Alpha,
		OffsetX: cfg.Cursor.OffsetX,
		OffsetY: cfg.Cursor.OffsetY,
	})
	if err != nil {
		log.Fatalf("handpilot: cursor mapper: %v", err)
	}

	arbiter, err := gesture.NewArbiter(arbiterConfig(cfg.Gesture), cursor, dispatcher)
	if err != nil {
		log.Fatalf("handpilot: gesture arbiter: %v", err)
	}

	var smoother *handpilot.LandmarkSmoother
	if cfg.Smoother.Enabled {
		smoother = handpilot.NewLandmarkSmoother(cfg.Smoother.Factor)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	start := time.Now()
	log.Println("handpilot: running, press Ctrl+C to stop")

loop:
	for {
		select {
		case <-sigCh:
			log.Println("handpilot: shutting down")
			break loop
		default:
		}

		frame, width, height, ok := cam.Read()
		if !ok {
			continue
		}

		t := time.Since(start).Seconds()
		snap, err := tracker.Infer(frame, width, height, t)
		if err != nil {
			log.Printf("handpilot: inference error: %v", err)
			continue
		}

		if smoother != nil {
			snap = smoother.Smooth(snap)
		}

		arbiter.Update(snap)
	}
}

func newBackend(cfg config.BackendConfig) (handpilot.Backend, error) {
	switch cfg.Kind {
	case config.BackendHID:
		return backend.NewHID(cfg.DeviceName)
	default:
		return backend.NewLocal()
	}
}

func arbiterConfig(g config.GestureConfig) gesture.ArbiterConfig {
	return gesture.ArbiterConfig{
		Pinch: gesture.PinchConfig{
			PinchThr:   g.Pinch.PinchThr,
			ReleaseThr: g.Pinch.ReleaseThr,
			HoldDelay:  g.Pinch.HoldDelay,
		},
		Scroll: gesture.ScrollConfig{
			RaiseThr:    g.Scroll.RaiseThr,
			PairThr:     g.Scroll.PairThr,
			MinDelta:    g.Scroll.MinDelta,
			Sensitivity: g.Scroll.Sensitivity,
		},
		Swipe: gesture.SwipeConfig{
			RaiseThr: g.Swipe.RaiseThr,
			PairThr:  g.Swipe.PairThr,
			Hold:     g.Swipe.Hold,
			MinDist:  g.Swipe.MinDist,
		},
		PalmArrow: gesture.PalmArrowConfig{
			RaiseThr: g.PalmArrow.RaiseThr,
			TightThr: g.PalmArrow.TightThr,
			Hold:     g.PalmArrow.Hold,
			Cooldown: g.PalmArrow.Cooldown,
		},
		Frame: gesture.FrameConfig{
			ActivationTime: g.Frame.ActivationTime,
			Cooldown:       g.Frame.Cooldown,
		},
		CopyPaste: gesture.CopyPasteConfig{
			HoldDuration:  g.CopyPaste.HoldDuration,
			BundleRadius:  g.CopyPaste.BundleRadius,
			OpenThr:       g.CopyPaste.OpenThr,
			SpreadMinDist: g.CopyPaste.SpreadMinDist,
		},
		StopResume: gesture.StopResumeConfig{
			StopHoldTime:           g.StopResume.StopHoldTime,
			BufferWindow:           g.StopResume.BufferWindow,
			MinArcAngle:            g.StopResume.MinArcAngle,
			TipConnectionThreshold: g.StopResume.TipConnectionThreshold,
			ResumeCooldown:         g.StopResume.ResumeCooldown,
		},
	}
}
