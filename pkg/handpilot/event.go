package handpilot

// EventKind discriminates the tagged Event variants. Events flow only
// forward, from gesture machines through the arbiter to the Dispatcher;
// machines never observe each other's events.
type EventKind int

const (
	EventMove EventKind = iota
	EventClick
	EventPinchStart
	EventPinchEnd
	EventScroll
	EventScreenshot
	EventCtrlLeft
	EventCtrlRight
	EventCopy
	EventPaste
	EventStop
	EventResume
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "Move"
	case EventClick:
		return "Click"
	case EventPinchStart:
		return "PinchStart"
	case EventPinchEnd:
		return "PinchEnd"
	case EventScroll:
		return "Scroll"
	case EventScreenshot:
		return "Screenshot"
	case EventCtrlLeft:
		return "CtrlLeft"
	case EventCtrlRight:
		return "CtrlRight"
	case EventCopy:
		return "Copy"
	case EventPaste:
		return "Paste"
	case EventStop:
		return "Stop"
	case EventResume:
		return "Resume"
	default:
		return "Unknown"
	}
}

// Event is a single dispatchable action emitted by a gesture machine.
// Move and Scroll carry payloads in X/Y and Dy respectively; all other
// kinds are carried by Kind alone.
type Event struct {
	Kind EventKind
	X, Y int
	Dy   float64
}

func MoveEvent(x, y int) Event     { return Event{Kind: EventMove, X: x, Y: y} }
func ScrollEvent(dy float64) Event { return Event{Kind: EventScroll, Dy: dy} }

var (
	ClickEvent      = Event{Kind: EventClick}
	PinchStartEvent = Event{Kind: EventPinchStart}
	PinchEndEvent   = Event{Kind: EventPinchEnd}
	ScreenshotEvent = Event{Kind: EventScreenshot}
	CtrlLeftEvent   = Event{Kind: EventCtrlLeft}
	CtrlRightEvent  = Event{Kind: EventCtrlRight}
	CopyEvent       = Event{Kind: EventCopy}
	PasteEvent      = Event{Kind: EventPaste}
	StopEvent       = Event{Kind: EventStop}
	ResumeEvent     = Event{Kind: EventResume}
)
