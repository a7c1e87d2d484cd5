package events

import (
	"context"
	"sync"
)

// Listener receives events from a Dispatcher.
type Listener func(ctx context.Context, event VerificationComplete)

// Dispatcher delivers events synchronously to in-process listeners, in
// subscription order.
type Dispatcher struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
	order     []int
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]Listener)}
}

// Subscribe registers fn and returns a function that removes it.
func (d *Dispatcher) Subscribe(fn Listener) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := d.next
	d.next++
	d.listeners[key] = fn
	d.order = append(d.order, key)

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners, key)
			for i, k := range d.order {
				if k == key {
					d.order = append(d.order[:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (d *Dispatcher) Publish(ctx context.Context, event VerificationComplete) error {
	d.mu.RLock()
	listeners := make([]Listener, 0, len(d.order))
	for _, k := range d.order {
		listeners = append(listeners, d.listeners[k])
	}
	d.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx, event)
	}
	return nil
}
