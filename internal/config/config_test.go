package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Camera.DeviceID != 0 {
		t.Errorf("expected DeviceID 0, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Camera.Width != 1280 {
		t.Errorf("expected Width 1280, got %d", cfg.Camera.Width)
	}
	if cfg.Camera.Height != 720 {
		t.Errorf("expected Height 720, got %d", cfg.Camera.Height)
	}
	if cfg.Camera.FPS != 30 {
		t.Errorf("expected FPS 30, got %d", cfg.Camera.FPS)
	}
	if cfg.Cursor.ScreenWidth != 1920 || cfg.Cursor.ScreenHeight != 1080 {
		t.Errorf("expected default screen 1920x1080, got %dx%d", cfg.Cursor.ScreenWidth, cfg.Cursor.ScreenHeight)
	}
	if cfg.Backend.Kind != BackendLocal {
		t.Errorf("expected default backend kind %q, got %q", BackendLocal, cfg.Backend.Kind)
	}
	if cfg.Relay.Enabled {
		t.Error("expected relay disabled by default")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error for non-existent file: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for non-existent file")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	content := `
[camera]
device_id = 1
width = 1920
height = 1080
fps = 60

[cursor]
screen_width = 2560
screen_height = 1440
roi_min_x = 0.15
roi_min_y = 0.15
roi_max_x = 0.85
roi_max_y = 0.85
gain = 1.8
alpha = 0.4

[gesture.pinch]
pinch_thr = 0.05
release_thr = 0.08
hold_delay = 0.3

[backend]
kind = "hid"
device_name = "my-device"

[relay]
enabled = true
url = "ws://example.invalid:8765"
session_id = "abc123"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Camera.DeviceID != 1 {
		t.Errorf("expected DeviceID 1, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Camera.Width != 1920 || cfg.Camera.Height != 1080 || cfg.Camera.FPS != 60 {
		t.Errorf("unexpected camera config: %+v", cfg.Camera)
	}
	if cfg.Cursor.ScreenWidth != 2560 || cfg.Cursor.Gain != 1.8 {
		t.Errorf("unexpected cursor config: %+v", cfg.Cursor)
	}
	if cfg.Gesture.Pinch.PinchThr != 0.05 {
		t.Errorf("expected pinch_thr 0.05, got %f", cfg.Gesture.Pinch.PinchThr)
	}
	if cfg.Backend.Kind != BackendHID || cfg.Backend.DeviceName != "my-device" {
		t.Errorf("unexpected backend config: %+v", cfg.Backend)
	}
	if !cfg.Relay.Enabled || cfg.Relay.SessionID != "abc123" {
		t.Errorf("unexpected relay config: %+v", cfg.Relay)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(path, []byte("invalid [ toml"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestValidate_InvalidWidth(t *testing.T) {
	cfg := Default()
	cfg.Camera.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid width")
	}
}

func TestValidate_InvalidHeight(t *testing.T) {
	cfg := Default()
	cfg.Camera.Height = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid height")
	}
}

func TestValidate_InvalidFPS(t *testing.T) {
	cfg := Default()
	cfg.Camera.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid FPS")
	}
}

func TestValidate_InvalidCursorROI(t *testing.T) {
	cfg := Default()
	cfg.Cursor.ROIMinX = 0.9
	cfg.Cursor.ROIMaxX = 0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted ROI")
	}
}

func TestValidate_InvalidCursorAlpha(t *testing.T) {
	cfg := Default()
	cfg.Cursor.Alpha = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero alpha")
	}

	cfg.Cursor.Alpha = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for alpha > 1")
	}
}

func TestValidate_InvalidBackendKind(t *testing.T) {
	cfg := Default()
	cfg.Backend.Kind = "vr-glove"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend kind")
	}
}

func TestValidate_RelayRequiresSessionIDWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Relay.Enabled = true
	cfg.Relay.SessionID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for relay enabled without session_id")
	}
}
