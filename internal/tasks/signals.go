package tasks

import "sync"

// SignalBus delivers a cancel signal to whoever currently holds a subscription.
//
// Handlers run on the emitting goroutine after the bus lock is released, so a handler may unsubscribe itself.
type SignalBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewSignalBus() *SignalBus {
	return &SignalBus{subs: map[int]func(){}}
}

// Subscribe registers fn and returns the function that releases it. Releasing more than once is a no-op.
func (b *SignalBus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Emit invokes every current handler and reports how many ran.
func (b *SignalBus) Emit() int {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
	return len(handlers)
}

// Active reports whether anything is subscribed.
func (b *SignalBus) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs) > 0
}
