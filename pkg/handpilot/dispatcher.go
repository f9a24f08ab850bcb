package handpilot

import (
	"log"
	"sync"
)

// DefaultQueueDepth is the default capacity of a Dispatcher's event queue.
const DefaultQueueDepth = 64

// Dispatcher is a bounded, single-consumer queue of Events. Producers call
// Emit from the main loop and must never block on it; one background
// goroutine owns the Backend and drains the queue, mapping each Event to a
// backend call.
type Dispatcher struct {
	backend Backend
	queue   chan Event
	done    chan struct{}

	// OnCopy, if set, is invoked after the Super+C chord on every Copy
	// event — the hook the clipboard bridge uses to send the freshly
	// copied host clipboard text to the relay.
	OnCopy func()

	mu               sync.Mutex
	pinchOutstanding bool
}

// NewDispatcher creates a dispatcher over the given backend with the given
// queue depth. depth <= 0 uses DefaultQueueDepth.
func NewDispatcher(backend Backend, depth int) *Dispatcher {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	d := &Dispatcher{
		backend: backend,
		queue:   make(chan Event, depth),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Emit enqueues an event for the consumer. Non-blocking: if the queue is
// saturated the event is logged and dropped rather than stalling the
// per-frame producer.
func (d *Dispatcher) Emit(e Event) {
	select {
	case d.queue <- e:
	default:
		log.Printf("dispatcher: queue saturated, dropping %s", e.Kind)
	}
}

// Shutdown enqueues the stop sentinel and waits for the consumer to drain
// and release the backend. If an unmatched PinchStart was observed, a
// left-up is issued before the backend is closed so the host is never left
// with a stuck button.
func (d *Dispatcher) Shutdown() error {
	close(d.queue)
	<-d.done
	return d.backend.Close()
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for e := range d.queue {
		d.process(e)
	}

	d.mu.Lock()
	outstanding := d.pinchOutstanding
	d.mu.Unlock()
	if outstanding {
		d.backend.LeftUp()
	}
}

func (d *Dispatcher) process(e Event) {
	switch e.Kind {
	case EventMove:
		d.backend.MoveTo(e.X, e.Y)
	case EventClick:
		d.backend.ClickLeft()
	case EventPinchStart:
		d.mu.Lock()
		d.pinchOutstanding = true
		d.mu.Unlock()
		d.backend.LeftDown()
	case EventPinchEnd:
		d.mu.Lock()
		d.pinchOutstanding = false
		d.mu.Unlock()
		d.backend.LeftUp()
	case EventScroll:
		d.backend.Scroll(0, e.Dy)
	case EventScreenshot:
		d.backend.Chord(ModSuper|ModShift, KeyDigit3)
	case EventCtrlLeft:
		d.backend.Chord(ModCtrl, KeyArrowLeft)
	case EventCtrlRight:
		d.backend.Chord(ModCtrl, KeyArrowRight)
	case EventCopy:
		d.backend.Chord(ModSuper, KeyC)
		if d.OnCopy != nil {
			d.OnCopy()
		}
	case EventPaste:
		d.backend.Chord(ModSuper, KeyV)
	}
}
