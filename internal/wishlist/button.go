package wishlist

import (
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/clock"
)

// BurstDuration is how long the particle burst stays visible after an add.
const BurstDuration = time.Second

// Button is one mounted wishlist control for a single product. Clicks and
// external activation signals both toggle through the shared Store.
type Button struct {
	store     *Store
	productID string
	clock     clock.Clock
	onReset   func()

	mu       sync.Mutex
	signal   bool
	burst    clock.Timer
	bursting bool
	closed   bool
}

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// WithClock sets the clock used to end the particle burst.
func WithClock(c clock.Clock) ButtonOption {
	return func(b *Button) { b.clock = c }
}

// WithResetHook sets the function called after an activation toggled, so the
// signal source can clear its flag.
func WithResetHook(fn func()) ButtonOption {
	return func(b *Button) { b.onReset = fn }
}

// NewButton mounts a button for productID on store.
func NewButton(store *Store, productID string, opts ...ButtonOption) *Button {
	b := &Button{store: store, productID: productID, clock: clock.Real{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ProductID returns the product the button controls.
func (b *Button) ProductID() string { return b.productID }

// Wishlisted reports the product's current membership.
func (b *Button) Wishlisted() (bool, error) {
	return b.store.Contains(b.productID)
}

// Bursting reports whether the particle burst is showing.
func (b *Button) Bursting() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bursting
}

// Click toggles the product and returns its new membership.
func (b *Button) Click() (bool, error) {
	added, err := b.store.Toggle(b.productID)
	if err != nil {
		return false, err
	}
	if added {
		b.startBurst()
	}
	return added, nil
}

// Activate feeds the external activation signal. Only a false to true
// transition toggles; toggled reports whether this call did.
func (b *Button) Activate(active bool) (toggled bool, err error) {
	b.mu.Lock()
	rising := active && !b.signal
	b.signal = active
	closed := b.closed
	b.mu.Unlock()

	if !rising || closed {
		return false, nil
	}

	if _, err := b.Click(); err != nil {
		return false, err
	}
	if b.onReset != nil {
		b.onReset()
	}
	return true, nil
}

// Close unmounts the button and cancels a pending burst.
func (b *Button) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.burst != nil {
		b.burst.Stop()
		b.burst = nil
	}
	b.bursting = false
}

func (b *Button) startBurst() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if b.burst != nil {
		b.burst.Stop()
	}

	var t clock.Timer
	t = b.clock.AfterFunc(BurstDuration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.burst == t {
			b.bursting = false
			b.burst = nil
		}
	})
	b.burst = t
	b.bursting = true
}
