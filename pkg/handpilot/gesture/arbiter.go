package gesture

import "github.com/sarinacheng/handpilot/pkg/handpilot"

// Sink receives the events an Arbiter decides to emit. *handpilot.Dispatcher
// satisfies this with its Emit method.
type Sink interface {
	Emit(e handpilot.Event)
}

// CursorMapper maps a primary-hand landmark to a screen position.
// *handpilot.CursorMapper satisfies this with its Update method.
type CursorMapper interface {
	Update(tip handpilot.Landmark) (x, y int)
}

// ArbiterConfig groups the configuration for every gesture machine the
// Arbiter composes.
type ArbiterConfig struct {
	Pinch      PinchConfig
	Scroll     ScrollConfig
	Swipe      SwipeConfig
	PalmArrow  PalmArrowConfig
	Frame      FrameConfig
	CopyPaste  CopyPasteConfig
	StopResume StopResumeConfig
}

// Arbiter composes the seven gesture machines into a single per-frame
// decision: Stop/Resume always runs and gates
// everything else behind the pause flag; Copy/Paste runs on the primary
// hand; Swipe suppresses Scroll and cursor movement when it fires; Scroll
// suppresses cursor movement while active; Pinch, Frame and PalmArrow always
// run regardless of the above.
type Arbiter struct {
	pinch      *Pinch
	scroll     *Scroll
	swipe      *Swipe
	palmArrow  *PalmArrow
	frame      *Frame
	copyPaste  *CopyPaste
	stopResume *StopResume

	cursor CursorMapper
	sink   Sink
}

// NewArbiter creates an Arbiter with all seven gesture machines and the
// cursor mapper and sink it dispatches to. Returns an error if any
// sub-machine's configuration is invalid.
func NewArbiter(cfg ArbiterConfig, cursor CursorMapper, sink Sink) (*Arbiter, error) {
	pinch, err := NewPinch(cfg.Pinch)
	if err != nil {
		return nil, err
	}
	scroll, err := NewScroll(cfg.Scroll)
	if err != nil {
		return nil, err
	}
	swipe, err := NewSwipe(cfg.Swipe)
	if err != nil {
		return nil, err
	}
	palmArrow, err := NewPalmArrow(cfg.PalmArrow)
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(cfg.Frame)
	if err != nil {
		return nil, err
	}
	copyPaste, err := NewCopyPaste(cfg.CopyPaste)
	if err != nil {
		return nil, err
	}
	stopResume, err := NewStopResume(cfg.StopResume)
	if err != nil {
		return nil, err
	}

	return &Arbiter{
		pinch:      pinch,
		scroll:     scroll,
		swipe:      swipe,
		palmArrow:  palmArrow,
		frame:      frame,
		copyPaste:  copyPaste,
		stopResume: stopResume,
		cursor:     cursor,
		sink:       sink,
	}, nil
}

func (a *Arbiter) emitAll(events []handpilot.Event) {
	for _, e := range events {
		a.sink.Emit(e)
	}
}

// Update runs one frame through the full composition and dispatches the
// resulting events to the sink.
func (a *Arbiter) Update(snap handpilot.Snapshot) {
	a.emitAll(a.stopResume.Update(snap))

	if a.stopResume.Paused() {
		return
	}

	a.emitAll(a.copyPaste.Update(snap))

	suppressCursor := false

	swipeEvents := a.swipe.Update(snap)
	if len(swipeEvents) > 0 {
		a.emitAll(swipeEvents)
		suppressCursor = true
	} else {
		scrollEvents := a.scroll.Update(snap)
		a.emitAll(scrollEvents)
		if a.scroll.IsScrolling() {
			suppressCursor = true
		}
	}

	if !suppressCursor {
		if hand, ok := snap.Primary(); ok {
			x, y := a.cursor.Update(hand.Lm(handpilot.IndexTip))
			a.sink.Emit(handpilot.MoveEvent(x, y))
		}
	}

	a.emitAll(a.pinch.Update(snap))
	a.emitAll(a.frame.Update(snap))
	a.emitAll(a.palmArrow.Update(snap))
}
