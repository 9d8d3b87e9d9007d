package animtransfer

const (
	STATE_CHANGED EventType = iota
	FRAME_APPLIED
	JOINT_SKIPPED
	TRANSFER_DONE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// StateChangedEvent is sent when the frame driver enters a new state
type StateChangedEvent struct {
	State State
	Frame int
}

func (e StateChangedEvent) Type() EventType { return STATE_CHANGED }

// FrameAppliedEvent is sent once the target skeleton and its root are keyed for a frame
type FrameAppliedEvent struct {
	Frame   int
	Applied int
	Skipped int
}

func (e FrameAppliedEvent) Type() EventType { return FRAME_APPLIED }

// JointSkippedEvent is sent for a joint left untouched because of a singular matrix
type JointSkippedEvent struct {
	Err *NumericalError
}

func (e JointSkippedEvent) Type() EventType { return JOINT_SKIPPED }

type TransferDoneEvent struct {
	Frames int
}

func (e TransferDoneEvent) Type() EventType { return TRANSFER_DONE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	if len(e.listeners[event.Type()]) == 0 {
		return
	}
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
