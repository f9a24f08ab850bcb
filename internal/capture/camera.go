// Package capture adapts a physical webcam to the handpilot.FrameSource
// boundary using gocv's V4L2 bindings.
package capture

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Camera is a handpilot.FrameSource backed by a V4L2 device opened through
// gocv, capturing MJPEG and mirroring every frame horizontally so the image
// reads as a mirror the way a user expects when facing the camera.
type Camera struct {
	cap *gocv.VideoCapture
	bgr gocv.Mat
	rgb gocv.Mat
}

// NewCamera opens device index at the given resolution, requesting MJPEG to
// keep USB bandwidth low at typical webcam resolutions.
func NewCamera(index, width, height int) (*Camera, error) {
	cap, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("capture: open device %d: %w", index, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	cap.Set(gocv.VideoCaptureFOURCC, float64(gocv.VideoWriterFourcc('M', 'J', 'P', 'G')))

	return &Camera{
		cap: cap,
		bgr: gocv.NewMat(),
		rgb: gocv.NewMat(),
	}, nil
}

// Read implements handpilot.FrameSource. The returned slice is a fresh copy,
// safe to retain past the next Read call.
func (c *Camera) Read() (frame []byte, width, height int, ok bool) {
	if !c.cap.Read(&c.bgr) || c.bgr.Empty() {
		return nil, 0, 0, false
	}

	gocv.Flip(c.bgr, &c.bgr, 1)
	gocv.CvtColor(c.bgr, &c.rgb, gocv.ColorBGRToRGB)

	buf := make([]byte, len(c.rgb.ToBytes()))
	copy(buf, c.rgb.ToBytes())
	return buf, c.rgb.Cols(), c.rgb.Rows(), true
}

// Close releases the device and the scratch mats.
func (c *Camera) Close() error {
	c.bgr.Close()
	c.rgb.Close()
	return c.cap.Close()
}
