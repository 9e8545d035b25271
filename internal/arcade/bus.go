package arcade

import "sync"

// Bus dispatches commands synchronously to every subscriber in subscription
// order. The zero value is ready to use.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners []busListener
}

type busListener struct {
	id int
	fn func(Command)
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Command)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, busListener{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers cmd to the listeners registered at the time of the call.
func (b *Bus) Publish(cmd Command) {
	b.mu.Lock()
	listeners := make([]func(Command), len(b.listeners))
	for i, l := range b.listeners {
		listeners[i] = l.fn
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(cmd)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
