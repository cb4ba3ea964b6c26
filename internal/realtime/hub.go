// internal/realtime/hub.go
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kaamwala/kaamwala_be/internal/logger"
)

// AuthEvent says the session of one client context changed. Subscribers
// re-read the session themselves; the event carries no session data.
type AuthEvent struct {
	ClientID string    `json:"clientId"`
	Origin   string    `json:"origin"`
	At       time.Time `json:"at"`
}

type subscriber struct {
	id uint64
	fn func(AuthEvent)
}

// Hub is the in-process auth-change broadcaster. Delivery is synchronous,
// in subscription order, with no queue and no replay for late subscribers.
type Hub struct {
	id   string
	mu   sync.RWMutex
	subs []subscriber
	next uint64

	publish func(AuthEvent)
}

func NewHub() *Hub {
	return &Hub{id: uuid.NewString()}
}

// InstanceID tags events published by this hub.
func (h *Hub) InstanceID() string { return h.id }

// Subscribe registers fn and returns a func that removes it.
func (h *Hub) Subscribe(fn func(AuthEvent)) func() {
	h.mu.Lock()
	h.next++
	id := h.next
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// SetPublisher installs a hook that forwards local events elsewhere, e.g.
// to other instances through Redis.
func (h *Hub) SetPublisher(fn func(AuthEvent)) {
	h.mu.Lock()
	h.publish = fn
	h.mu.Unlock()
}

func (h *Hub) NotifyAuthChanged(clientID string) {
	ev := AuthEvent{ClientID: clientID, Origin: h.id, At: time.Now()}
	h.Deliver(ev)

	h.mu.RLock()
	pub := h.publish
	h.mu.RUnlock()
	if pub != nil {
		pub(ev)
	}
}

// Deliver runs every current subscriber with ev. A panicking subscriber is
// logged and skipped.
func (h *Hub) Deliver(ev AuthEvent) {
	h.mu.RLock()
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		h.call(s, ev)
	}
}

func (h *Hub) call(s subscriber, ev AuthEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("auth-change subscriber panicked", "subscriber", s.id, "panic", r)
		}
	}()
	s.fn(ev)
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
