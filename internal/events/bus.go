// Package events carries state-change notifications between otherwise
// independent parts of the app. Subscribers receive the new value with the
// event instead of re-reading storage on every signal.
package events

import "sync"

const (
	VisionUpdated      = "vision.updated"
	VisionImageCreated = "vision.image.created"
)

type Event struct {
	Name    string
	UserID  string
	Payload any
}

type Handler func(Event)

type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{subs: map[string][]Handler{}}
}

func (b *Bus) Subscribe(name string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[name] = append(b.subs[name], fn)
}

// Publish invokes handlers synchronously, in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subs[e.Name]...)
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(e)
	}
}
