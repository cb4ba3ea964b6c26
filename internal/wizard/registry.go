package wizard

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Registry keeps one wizard draft per client context. Drafts expire after
// ttl without activity, and the least recently used are evicted beyond size.
type Registry struct {
	mu        sync.Mutex
	drafts    *expirable.LRU[string, *Wizard]
	registrar Registrar
}

func NewRegistry(r Registrar, size int, ttl time.Duration) *Registry {
	return &Registry{
		drafts:    expirable.NewLRU[string, *Wizard](size, nil, ttl),
		registrar: r,
	}
}

// Get returns the draft of clientID, starting a new one if needed. Each
// call renews the draft's expiry.
func (r *Registry) Get(clientID string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.drafts.Get(clientID)
	if !ok {
		w = New(r.registrar)
	}
	r.drafts.Add(clientID, w)
	return w
}

func (r *Registry) Drop(clientID string) {
	r.drafts.Remove(clientID)
}

func (r *Registry) Len() int { return r.drafts.Len() }
