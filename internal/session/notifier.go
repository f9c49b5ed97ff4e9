// Package session carries authentication state changes to whoever holds
// per-session state (the member cache registry).
package session

import (
	"context"
	"sync"
)

// Event is emitted when an operator signs in or out.
type Event struct {
	OperatorID    string
	Email         string
	Authenticated bool
}

type Listener func(ctx context.Context, ev Event)

// Notifier fans events out to subscribers synchronously, in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn and returns a function that removes it again.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.order = append(n.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.listeners, id)
			for i, v := range n.order {
				if v == id {
					n.order = append(n.order[:i], n.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers ev to every current subscriber.
func (n *Notifier) Publish(ctx context.Context, ev Event) {
	n.mu.RLock()
	listeners := make([]Listener, 0, len(n.order))
	for _, id := range n.order {
		listeners = append(listeners, n.listeners[id])
	}
	n.mu.RUnlock()

	// Listeners run outside the lock so they may subscribe or unsubscribe
	for _, fn := range listeners {
		fn(ctx, ev)
	}
}
