package board

import (
	"reflect"
	"sync"

	"github.com/inamate/board/internal/document"
)

// ChangeType names the edit that produced a ChangeEvent.
type ChangeType string

const (
	ChangeDragElement   ChangeType = "drag-element"
	ChangeResizeElement ChangeType = "resize-element"
	ChangeSetData       ChangeType = "set-data"
	ChangeAddElement    ChangeType = "add-element"
	ChangeDeleteElement ChangeType = "delete-element"
	ChangeMoveElement   ChangeType = "move-element"
	ChangeUpdateElement ChangeType = "update-element"
)

// ChangeEvent is emitted after an interaction finished mutating the scene.
type ChangeEvent struct {
	Type ChangeType
	Data *document.Scene
}

// CursorEvent asks the host to change the pointer cursor. Type is a hit target identity
// ("over-element", "resize-top-left", ...) or empty for the default cursor.
type CursorEvent struct {
	Type      string
	ElementID string
}

type handler struct {
	id int
	fn func(any)
}

// EventHub delivers typed events. Handlers of an event type run in subscription order on the
// emitting goroutine.
type EventHub struct {
	mu       sync.Mutex
	nextID   int
	handlers map[reflect.Type][]handler
}

func NewEventHub() *EventHub {
	return &EventHub{handlers: make(map[reflect.Type][]handler)}
}

// On subscribes fn to events of type E and returns the function that unsubscribes it.
func On[E any](h *EventHub, fn func(E)) (off func()) {
	key := reflect.TypeFor[E]()

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.handlers[key] = append(h.handlers[key], handler{id: id, fn: func(v any) { fn(v.(E)) }})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.handlers[key]
		for i, hd := range list {
			if hd.id == id {
				h.handlers[key] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(h.handlers[key]) == 0 {
			delete(h.handlers, key)
		}
	}
}

// Emit delivers e to every subscriber of its type.
func Emit[E any](h *EventHub, e E) {
	h.mu.Lock()
	list := append([]handler(nil), h.handlers[reflect.TypeFor[E]()]...)
	h.mu.Unlock()

	for _, hd := range list {
		hd.fn(e)
	}
}

// Has reports whether anything listens for E.
func Has[E any](h *EventHub) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers[reflect.TypeFor[E]()]) > 0
}
