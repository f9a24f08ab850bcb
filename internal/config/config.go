// Package config provides TOML configuration loading for handpilot.
//
// The configuration file supports the following structure:
//
//	[camera]
//	device_id = 0
//	width = 1280
//	height = 720
//	fps = 30
//
//	[cursor]
//	screen_width = 1920
//	screen_height = 1080
//	gain = 1.6
//	alpha = 0.35
//
//	[smoothing]
//	enabled = true
//	factor = 0.5
//
//	[gesture.pinch]
//	pinch_thr = 0.045
//	release_thr = 0.07
//	hold_delay = 0.25
//
//	[backend]
//	kind = "local" # "local" or "hid"
//	device_name = "handpilot"
//
//	[relay]
//	enabled = false
//	url = "ws://127.0.0.1:8765"
//	session_id = ""
//
// Example usage:
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Camera device: %d\n", cfg.Camera.DeviceID)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the complete handpilot configuration.
type Config struct {
	Camera   CameraConfig   `toml:"camera"`
	Cursor   CursorConfig   `toml:"cursor"`
	Gesture  GestureConfig  `toml:"gesture"`
	Backend  BackendConfig  `toml:"backend"`
	Relay    RelayConfig    `toml:"relay"`
	Smoother SmootherConfig `toml:"smoothing"`
}

// CameraConfig holds webcam capture settings.
type CameraConfig struct {
	// DeviceID is the camera device index (default: 0).
	DeviceID int `toml:"device_id"`
	// Width is the capture width in pixels (default: 1280).
	Width int `toml:"width"`
	// Height is the capture height in pixels (default: 720).
	Height int `toml:"height"`
	// FPS is the target frame rate (default: 30).
	FPS int `toml:"fps"`
}

// CursorConfig holds the cursor mapper's ROI, gain, and smoothing settings.
type CursorConfig struct {
	ScreenWidth  int     `toml:"screen_width"`
	ScreenHeight int     `toml:"screen_height"`
	ROIMinX      float64 `toml:"roi_min_x"`
	ROIMinY      float64 `toml:"roi_min_y"`
	ROIMaxX      float64 `toml:"roi_max_x"`
	ROIMaxY      float64 `toml:"roi_max_y"`
	Gain         float64 `toml:"gain"`
	Alpha        float64 `toml:"alpha"`
	// OffsetX/OffsetY shift the mapped position by a fixed pixel amount,
	// for displays whose usable area doesn't start at the origin.
	OffsetX int `toml:"offset_x"`
	OffsetY int `toml:"offset_y"`
}

// SmootherConfig controls the optional per-landmark smoothing stage applied
// before gesture classification.
type SmootherConfig struct {
	Enabled bool `toml:"enabled"`
	// Factor is in [0,1]: 0 is maximum smoothing (slow response), 1 is no
	// smoothing.
	Factor float64 `toml:"factor"`
}

// GestureConfig groups every gesture machine's thresholds.
type GestureConfig struct {
	Pinch      PinchConfig      `toml:"pinch"`
	Scroll     ScrollConfig     `toml:"scroll"`
	Swipe      SwipeConfig      `toml:"swipe"`
	PalmArrow  PalmArrowConfig  `toml:"palm_arrow"`
	Frame      FrameConfig      `toml:"frame"`
	CopyPaste  CopyPasteConfig  `toml:"copy_paste"`
	StopResume StopResumeConfig `toml:"stop_resume"`
}

// PinchConfig mirrors gesture.PinchConfig for TOML decoding.
type PinchConfig struct {
	PinchThr   float64 `toml:"pinch_thr"`
	ReleaseThr float64 `toml:"release_thr"`
	HoldDelay  float64 `toml:"hold_delay"`
}

// ScrollConfig mirrors gesture.ScrollConfig for TOML decoding.
type ScrollConfig struct {
	RaiseThr    float64 `toml:"raise_thr"`
	PairThr     float64 `toml:"pair_thr"`
	MinDelta    float64 `toml:"min_delta"`
	Sensitivity float64 `toml:"sensitivity"`
}

// SwipeConfig mirrors gesture.SwipeConfig for TOML decoding.
type SwipeConfig struct {
	RaiseThr float64 `toml:"raise_thr"`
	PairThr  float64 `toml:"pair_thr"`
	Hold     float64 `toml:"hold"`
	MinDist  float64 `toml:"min_dist"`
}

// PalmArrowConfig mirrors gesture.PalmArrowConfig for TOML decoding.
type PalmArrowConfig struct {
	RaiseThr float64 `toml:"raise_thr"`
	TightThr float64 `toml:"tight_thr"`
	Hold     float64 `toml:"hold"`
	Cooldown float64 `toml:"cooldown"`
}

// FrameConfig mirrors gesture.FrameConfig for TOML decoding.
type FrameConfig struct {
	ActivationTime float64 `toml:"activation_time"`
	Cooldown       float64 `toml:"cooldown"`
}

// CopyPasteConfig mirrors gesture.CopyPasteConfig for TOML decoding.
type CopyPasteConfig struct {
	HoldDuration  float64 `toml:"hold_duration"`
	BundleRadius  float64 `toml:"bundle_radius"`
	OpenThr       float64 `toml:"open_thr"`
	SpreadMinDist float64 `toml:"spread_min_dist"`
}

// StopResumeConfig mirrors gesture.StopResumeConfig for TOML decoding.
type StopResumeConfig struct {
	StopHoldTime           float64 `toml:"stop_hold_time"`
	BufferWindow           float64 `toml:"buffer_window"`
	MinArcAngle            float64 `toml:"min_arc_angle"`
	TipConnectionThreshold float64 `toml:"tip_connection_threshold"`
	ResumeCooldown         float64 `toml:"resume_cooldown"`
}

// BackendKind selects which Backend implementation the main loop wires up.
type BackendKind string

const (
	BackendLocal BackendKind = "local"
	BackendHID   BackendKind = "hid"
)

// BackendConfig selects and configures the input backend.
type BackendConfig struct {
	Kind       BackendKind `toml:"kind"`
	DeviceName string      `toml:"device_name"`
}

// RelayConfig configures the optional clipboard relay bridge.
type RelayConfig struct {
	Enabled   bool   `toml:"enabled"`
	URL       string `toml:"url"`
	SessionID string `toml:"session_id"`
	// Name is the human-readable peer name sent with JOIN and stamped on
	// outgoing CLIPBOARD_SET messages.
	Name string `toml:"name"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			DeviceID: 0,
			Width:    1280,
			Height:   720,
			FPS:      30,
		},
		Cursor: CursorConfig{
			ScreenWidth:  1920,
			ScreenHeight: 1080,
			ROIMinX:      0.1,
			ROIMinY:      0.1,
			ROIMaxX:      0.9,
			ROIMaxY:      0.9,
			Gain:         1.6,
			Alpha:        0.35,
		},
		Smoother: SmootherConfig{
			Enabled: true,
			Factor:  0.5,
		},
		Gesture: GestureConfig{
			Pinch:      PinchConfig{PinchThr: 0.045, ReleaseThr: 0.07, HoldDelay: 0.25},
			Scroll:     ScrollConfig{RaiseThr: 0.01, PairThr: 0.06, MinDelta: 0.015, Sensitivity: 5},
			Swipe:      SwipeConfig{RaiseThr: 0.01, PairThr: 0.06, Hold: 0.15, MinDist: 0.12},
			PalmArrow:  PalmArrowConfig{RaiseThr: 0.01, TightThr: 0.05, Hold: 0.35, Cooldown: 1.2},
			Frame:      FrameConfig{ActivationTime: 1.0, Cooldown: 2.0},
			CopyPaste:  CopyPasteConfig{HoldDuration: 1.0, BundleRadius: 0.05, OpenThr: 0.3, SpreadMinDist: 0.08},
			StopResume: StopResumeConfig{StopHoldTime: 1.2, BufferWindow: 1.0, MinArcAngle: 1.5, TipConnectionThreshold: 0.06, ResumeCooldown: 1.5},
		},
		Backend: BackendConfig{
			Kind:       BackendLocal,
			DeviceName: "handpilot",
		},
		Relay: RelayConfig{
			Enabled:   false,
			URL:       "ws://127.0.0.1:8765",
			SessionID: "",
			Name:      "handpilot",
		},
	}
}

// Load reads and parses a TOML configuration file.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Camera.Width <= 0 {
		return fmt.Errorf("camera width must be positive, got %d", c.Camera.Width)
	}
	if c.Camera.Height <= 0 {
		return fmt.Errorf("camera height must be positive, got %d", c.Camera.Height)
	}
	if c.Camera.FPS <= 0 {
		return fmt.Errorf("camera FPS must be positive, got %d", c.Camera.FPS)
	}
	if c.Cursor.ScreenWidth <= 0 || c.Cursor.ScreenHeight <= 0 {
		return fmt.Errorf("cursor screen dimensions must be positive, got %dx%d", c.Cursor.ScreenWidth, c.Cursor.ScreenHeight)
	}
	if c.Cursor.ROIMinX >= c.Cursor.ROIMaxX || c.Cursor.ROIMinY >= c.Cursor.ROIMaxY {
		return fmt.Errorf("cursor ROI min must be less than max")
	}
	if c.Cursor.Alpha <= 0 || c.Cursor.Alpha > 1 {
		return fmt.Errorf("cursor alpha must be in (0, 1], got %f", c.Cursor.Alpha)
	}
	switch c.Backend.Kind {
	case BackendLocal, BackendHID:
	default:
		return fmt.Errorf("backend kind must be %q or %q, got %q", BackendLocal, BackendHID, c.Backend.Kind)
	}
	if c.Relay.Enabled && c.Relay.SessionID == "" {
		return fmt.Errorf("relay session_id must be set when relay is enabled")
	}
	return nil
}
