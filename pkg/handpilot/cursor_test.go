package handpilot

import "testing"

func testCursorConfig() CursorConfig {
	return CursorConfig{
		ScreenW: 1920, ScreenH: 1080,
		ROIXMin: 0.2, ROIXMax: 0.8,
		ROIYMin: 0.2, ROIYMax: 0.8,
		Gain:  1.5,
		Alpha: 0.5,
	}
}

func TestNewCursorMapperValidation(t *testing.T) {
	cfg := testCursorConfig()
	cfg.ROIXMax = cfg.ROIXMin
	if _, err := NewCursorMapper(cfg); err == nil {
		t.Error("expected error for inverted ROI")
	}

	cfg = testCursorConfig()
	cfg.Gain = 0.5
	if _, err := NewCursorMapper(cfg); err == nil {
		t.Error("expected error for gain < 1")
	}

	cfg = testCursorConfig()
	cfg.Alpha = 0
	if _, err := NewCursorMapper(cfg); err == nil {
		t.Error("expected error for alpha <= 0")
	}
}

func TestCursorMapperWithinBounds(t *testing.T) {
	m, err := NewCursorMapper(testCursorConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	points := []Landmark{
		{X: -1, Y: -1}, {X: 0.5, Y: 0.5}, {X: 2, Y: 2}, {X: 0.2, Y: 0.8},
	}
	for _, p := range points {
		x, y := m.Update(p)
		if x < 0 || x > 1919 || y < 0 || y > 1079 {
			t.Errorf("Update(%v) = (%d,%d), want within screen bounds", p, x, y)
		}
	}
}

func TestCursorMapperConvergesOnConstantInput(t *testing.T) {
	m, err := NewCursorMapper(testCursorConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tip := Landmark{X: 0.5, Y: 0.5}
	x0, y0 := m.Update(tip)
	for i := 0; i < 50; i++ {
		x0, y0 = m.Update(tip)
	}
	x1, y1 := m.Update(tip)
	if x1 != x0 || y1 != y0 {
		t.Errorf("expected convergence, got (%d,%d) then (%d,%d)", x0, y0, x1, y1)
	}
}

func TestCursorMapperResetReinitialises(t *testing.T) {
	m, err := NewCursorMapper(testCursorConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Update(Landmark{X: 0.2, Y: 0.2})
	m.Reset()

	// After reset, the next update should jump straight to the target
	// (no gain amplification against stale state) rather than easing in
	// from the previous smoothed position.
	x, y := m.Update(Landmark{X: 0.8, Y: 0.8})
	if x <= 959 || y <= 539 {
		t.Errorf("expected reset to re-init near bottom-right target, got (%d,%d)", x, y)
	}
}
