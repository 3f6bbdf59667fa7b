// Package notify relays realtime events (new chat messages) to subscribed
// sessions. Order changes are deliberately not pushed; the order view has an
// accepted staleness window between explicit refreshes.
package notify

import "sync"

// EventKind names a realtime event stream.
type EventKind string

const (
	EventPrivateMessage EventKind = "chat_message"
	EventGroupMessage   EventKind = "group_message"
)

// Event is one pushed notification. Payload is the inserted row.
type Event struct {
	Kind    EventKind   `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Subscription receives events on C until Cancel is called. Slow consumers
// lose the oldest buffered events rather than blocking publishers.
type Subscription struct {
	C     chan Event
	kinds map[EventKind]bool
	hub   *Hub
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.hub.remove(s)
}

// Hub fans events out to subscriptions. Handlers receive current context
// explicitly with each event; nothing is captured at subscribe time.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]bool)}
}

const subscriptionBuffer = 16

// Subscribe registers interest in the given kinds; no kinds means all.
func (h *Hub) Subscribe(kinds ...EventKind) *Subscription {
	s := &Subscription{
		C:     make(chan Event, subscriptionBuffer),
		kinds: make(map[EventKind]bool, len(kinds)),
		hub:   h,
	}
	for _, k := range kinds {
		s.kinds[k] = true
	}
	h.mu.Lock()
	h.subs[s] = true
	h.mu.Unlock()
	return s
}

// Publish delivers an event to every matching subscription.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if len(s.kinds) > 0 && !s.kinds[ev.Kind] {
			continue
		}
		for {
			select {
			case s.C <- ev:
			default:
				// Buffer full: drop the oldest and retry.
				select {
				case <-s.C:
				default:
				}
				continue
			}
			break
		}
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[s] {
		delete(h.subs, s)
		close(s.C)
	}
}
