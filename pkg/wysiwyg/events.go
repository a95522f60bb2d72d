package wysiwyg

import (
	"slices"
	"strings"
	"sync"
)

// Mode is the surface currently shown to the user
type Mode int

const (
	ModeVisual Mode = iota
	ModeCode
)

func (m Mode) String() string {
	if m == ModeCode {
		return "code"
	}
	return "visual"
}

// EventType names an editor event
type EventType string

const (
	// EventModeChanged fires after the editor switched between visual and code mode
	EventModeChanged EventType = "mode-changed"

	// EventInitialized fires once, at the end of New
	EventInitialized EventType = "initialized"
)

// Event is delivered to listeners
type Event struct {
	Type EventType
	Mode Mode
}

// Handler receives editor events
type Handler func(Event)

// ListenerID identifies a registered handler
type ListenerID uint64

type listener struct {
	id         ListenerID
	eventType  EventType
	namespaces []string
	handler    Handler
}

// listeners is the registry behind On and Off. Handlers run outside its lock
// so they may register or remove listeners themselves.
type listeners struct {
	mu    sync.Mutex
	next  ListenerID
	items []listener
}

// parseEvent splits "type.ns1.ns2" into its type and namespaces
func parseEvent(event string) (EventType, []string) {
	parts := strings.Split(event, ".")
	return EventType(parts[0]), parts[1:]
}

func (l *listeners) add(event string, handler Handler) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()

	eventType, namespaces := parseEvent(event)
	l.next++
	l.items = append(l.items, listener{
		id:         l.next,
		eventType:  eventType,
		namespaces: namespaces,
		handler:    handler,
	})
	return l.next
}

// remove drops the handlers matching event. The type "*" matches every type,
// a namespace restricts the match and a zero id matches every handler.
func (l *listeners) remove(event string, id ListenerID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	eventType, namespaces := parseEvent(event)
	l.items = slices.DeleteFunc(l.items, func(item listener) bool {
		if eventType != "*" && item.eventType != eventType {
			return false
		}
		if len(namespaces) > 0 && !slices.Contains(item.namespaces, namespaces[0]) {
			return false
		}
		return id == 0 || item.id == id
	})
}

func (l *listeners) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

func (l *listeners) dispatch(events []Event) {
	for _, ev := range events {
		l.mu.Lock()
		var handlers []Handler
		for _, item := range l.items {
			if item.eventType == ev.Type {
				handlers = append(handlers, item.handler)
			}
		}
		l.mu.Unlock()

		for _, h := range handlers {
			h(ev)
		}
	}
}
