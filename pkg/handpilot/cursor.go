package handpilot

import (
	"fmt"
	"math"
	"sync"
)

// CursorConfig configures the ROI-to-screen mapping used by CursorMapper.
type CursorConfig struct {
	ScreenW, ScreenH int

	ROIXMin, ROIXMax float64
	ROIYMin, ROIYMax float64

	// Gain amplifies intent relative to the previous smoothed position
	// before the EMA step suppresses jitter. Must be >= 1.
	Gain float64
	// Alpha is the EMA smoothing factor in (0, 1].
	Alpha float64

	OffsetX, OffsetY int
}

// Validate checks the configuration for invalid values. Called at
// construction time; an inverted or degenerate ROI is a programmer error,
// not a runtime condition the mapper can recover from.
func (c CursorConfig) Validate() error {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return fmt.Errorf("cursor: screen size must be positive, got %dx%d", c.ScreenW, c.ScreenH)
	}
	if c.ROIXMax <= c.ROIXMin || c.ROIYMax <= c.ROIYMin {
		return fmt.Errorf("cursor: ROI max must exceed min, got x=[%.3f,%.3f] y=[%.3f,%.3f]",
			c.ROIXMin, c.ROIXMax, c.ROIYMin, c.ROIYMax)
	}
	if c.Gain < 1 {
		return fmt.Errorf("cursor: gain must be >= 1, got %.3f", c.Gain)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("cursor: alpha must be in (0,1], got %.3f", c.Alpha)
	}
	return nil
}

// CursorMapper maps an index fingertip landmark to smoothed screen pixels.
// Its lifetime is the process; state resets only if recreated.
type CursorMapper struct {
	cfg CursorConfig

	mu   sync.Mutex
	sx   float64
	sy   float64
	init bool
}

// NewCursorMapper creates a mapper for the given configuration. Returns an
// error if cfg is invalid.
func NewCursorMapper(cfg CursorConfig) (*CursorMapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CursorMapper{cfg: cfg}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update maps a fingertip landmark to smoothed, clamped screen pixels:
// ROI rescale, gain relative to the previous smoothed position, offset,
// clamp, then EMA.
func (c *CursorMapper) Update(tip Landmark) (x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nx := (tip.X - c.cfg.ROIXMin) / (c.cfg.ROIXMax - c.cfg.ROIXMin)
	ny := (tip.Y - c.cfg.ROIYMin) / (c.cfg.ROIYMax - c.cfg.ROIYMin)
	nx = clamp(nx, 0, 1)
	ny = clamp(ny, 0, 1)

	tx := nx * float64(c.cfg.ScreenW)
	ty := ny * float64(c.cfg.ScreenH)

	if !c.init {
		c.sx, c.sy = tx, ty
		c.init = true
	} else {
		tx = c.sx + c.cfg.Gain*(tx-c.sx)
		ty = c.sy + c.cfg.Gain*(ty-c.sy)
	}

	tx += float64(c.cfg.OffsetX)
	ty += float64(c.cfg.OffsetY)

	tx = clamp(tx, 0, float64(c.cfg.ScreenW-1))
	ty = clamp(ty, 0, float64(c.cfg.ScreenH-1))

	c.sx = (1-c.cfg.Alpha)*c.sx + c.cfg.Alpha*tx
	c.sy = (1-c.cfg.Alpha)*c.sy + c.cfg.Alpha*ty

	// The EMA blends against the pre-clamp smoothed state, so on the very
	// first frame (or after Reset) it can round up to exactly W or H; clamp
	// the output so callers never see an off-screen coordinate.
	outX := clamp(c.sx, 0, float64(c.cfg.ScreenW-1))
	outY := clamp(c.sy, 0, float64(c.cfg.ScreenH-1))

	return int(math.Round(outX)), int(math.Round(outY))
}

// Reset clears the smoothed position so the next Update initialises fresh.
func (c *CursorMapper) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sx, c.sy = 0, 0
	c.init = false
}
