package arcade

import (
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/wishlist"
)

// ProductView is a mounted product page listening on the deck's bus. A
// ToggleWishlist command raises the page's activation flag, which the
// wishlist button consumes and then resets.
type ProductView struct {
	handle  string
	handles []string
	logger  *slog.Logger
	button  *wishlist.Button
	unsub   func()

	mu        sync.Mutex
	activated bool
	target    string
	err       error
}

// NewProductView mounts a view for the product identified by productID and
// handle. handles is the full navigation ring.
func NewProductView(bus *Bus, store *wishlist.Store, productID, handle string, handles []string, logger *slog.Logger, opts ...wishlist.ButtonOption) *ProductView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &ProductView{handle: handle, handles: handles, logger: logger}
	opts = append(opts, wishlist.WithResetHook(v.resetActivation))
	v.button = wishlist.NewButton(store, productID, opts...)
	v.unsub = bus.Subscribe(v.onCommand)
	return v
}

func (v *ProductView) onCommand(cmd Command) {
	switch cmd.Kind {
	case ToggleWishlist:
		v.mu.Lock()
		v.activated = true
		v.mu.Unlock()
		if _, err := v.button.Activate(true); err != nil {
			v.fail(err)
		}
	case Navigate:
		next, err := Adjacent(v.handles, v.handle, cmd.Direction)
		if err != nil {
			v.logger.Warn("arcade navigation skipped",
				slog.String("handle", v.handle),
				slog.String("direction", cmd.Direction.String()),
				slog.String("error", err.Error()),
			)
			return
		}
		v.mu.Lock()
		v.target = next
		v.mu.Unlock()
	}
}

func (v *ProductView) resetActivation() {
	v.mu.Lock()
	v.activated = false
	v.mu.Unlock()
	_, _ = v.button.Activate(false)
}

func (v *ProductView) fail(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err == nil {
		v.err = err
	}
}

// Button returns the view's wishlist button.
func (v *ProductView) Button() *wishlist.Button { return v.button }

// Activated reports whether an activation is waiting to be consumed.
func (v *ProductView) Activated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activated
}

// NextHandle is the handle a Navigate command resolved to, or "".
func (v *ProductView) NextHandle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.target
}

// Err returns the first error raised while handling a command.
func (v *ProductView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close unsubscribes from the bus and unmounts the button.
func (v *ProductView) Close() {
	v.unsub()
	v.button.Close()
}
