package handpilot

// FrameSource is the camera boundary consumed by the main loop. Read blocks
// until the next frame is available and returns false when
// the source is closed. The implementation is responsible for mirroring the
// image horizontally so that "right" on screen matches the user's right
// hand — see internal/capture for the production adapter.
type FrameSource interface {
	Read() (frame []byte, width, height int, ok bool)
	Close() error
}

// HandTracker is the hand-landmark inference boundary consumed by the main
// loop. It is an external collaborator: the core depends only
// on the {multi_hands: [{landmarks[21], label, score}]} shape, never on a
// specific model. Production wiring plugs in whatever inference backend is
// available; this package ships only the interface and a fake for tests.
type HandTracker interface {
	Infer(frame []byte, width, height int, t float64) (Snapshot, error)
	Close() error
}

// ClipboardIO is the host clipboard boundary consumed by the clipboard
// bridge.
type ClipboardIO interface {
	ReadText() (string, error)
	WriteText(s string) error
}
