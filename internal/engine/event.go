package engine

import (
	"errors"
	"fmt"
	"log"
)

// EventKind identifies one of the closed set of navigation events.
type EventKind int

const (
	KindFaceSelected EventKind = iota
	KindNavigateStart
	KindNavigateClose
)

func (k EventKind) String() string {
	switch k {
	case KindFaceSelected:
		return "face:selected"
	case KindNavigateStart:
		return "navigate:start"
	case KindNavigateClose:
		return "navigate:close"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is implemented only by the payload types in this file.
type Event interface {
	Kind() EventKind
	sealed()
}

// FaceSelected is published by the selection resolver when a tap hits a face.
type FaceSelected struct {
	FaceID string
}

// NavigateStart tells content displays to reveal the content of a face.
type NavigateStart struct {
	FaceID     string
	ContentRef string
	Label      string
}

// NavigateClose is the only trigger for the return-to-center transition.
type NavigateClose struct{}

func (FaceSelected) Kind() EventKind  { return KindFaceSelected }
func (NavigateStart) Kind() EventKind { return KindNavigateStart }
func (NavigateClose) Kind() EventKind { return KindNavigateClose }

func (FaceSelected) sealed()  {}
func (NavigateStart) sealed() {}
func (NavigateClose) sealed() {}

// Handler receives a published event.
type Handler func(Event)

// Bus is a synchronous multi-cast publish/subscribe hub.
// Handlers for a kind run in subscription order on the publisher's stack.
type Bus struct {
	listeners map[EventKind][]Handler
	logger    *log.Logger
}

func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		listeners: make(map[EventKind][]Handler),
		logger:    logger,
	}
}

// Subscribe adds a handler for kind. Nil handlers are ignored.
func (b *Bus) Subscribe(kind EventKind, h Handler) {
	if h == nil {
		return
	}
	b.listeners[kind] = append(b.listeners[kind], h)
}

func (b *Bus) OnFaceSelected(fn func(FaceSelected)) {
	if fn == nil {
		return
	}
	b.Subscribe(KindFaceSelected, func(e Event) { fn(e.(FaceSelected)) })
}

func (b *Bus) OnNavigateStart(fn func(NavigateStart)) {
	if fn == nil {
		return
	}
	b.Subscribe(KindNavigateStart, func(e Event) { fn(e.(NavigateStart)) })
}

func (b *Bus) OnNavigateClose(fn func(NavigateClose)) {
	if fn == nil {
		return
	}
	b.Subscribe(KindNavigateClose, func(e Event) { fn(e.(NavigateClose)) })
}

// Publish invokes every handler registered for the event's kind.
// A panicking handler is recovered and logged; later handlers still run.
// The returned error joins every recovered fault, or is nil.
func (b *Bus) Publish(e Event) error {
	var faults []error
	for i, h := range b.listeners[e.Kind()] {
		if err := b.invoke(h, e); err != nil {
			b.logger.Printf("[bus] %s handler %d failed: %v", e.Kind(), i, err)
			faults = append(faults, err)
		}
	}
	return errors.Join(faults...)
}

func (b *Bus) invoke(h Handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panic: %v", e.Kind(), r)
		}
	}()
	h(e)
	return nil
}

// HandlerCount returns the number of handlers registered for kind.
func (b *Bus) HandlerCount(kind EventKind) int {
	return len(b.listeners[kind])
}

// Reset removes all handlers.
func (b *Bus) Reset() {
	b.listeners = make(map[EventKind][]Handler)
}
