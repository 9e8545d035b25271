package wishlist

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Change describes one membership flip.
type Change struct {
	ProductID string
	Added     bool
}

// Listener is notified after every successful mutation.
type Listener func(Change)

// Store is the single owner of a visitor's wishlist. Every reader and writer
// goes through it, and it writes the full set to its Persister on each
// mutation.
type Store struct {
	persister Persister
	logger    *slog.Logger

	mu        sync.Mutex
	set       Set
	loaded    bool
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn Listener
}

// NewStore creates a store over p. The persisted value is read lazily on
// first use.
func NewStore(p Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{persister: p, logger: logger}
}

// load must be called with s.mu held.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	set, err := s.persister.Load()
	switch {
	case err == nil:
	case errors.Is(err, ErrMissing), errors.Is(err, ErrCorrupt):
		if errors.Is(err, ErrCorrupt) {
			s.logger.Warn("resetting corrupt wishlist", slog.String("error", err.Error()))
		}
		set = Set{}
		if serr := s.persister.Save(set); serr != nil {
			return fmt.Errorf("reset wishlist: %w", serr)
		}
	default:
		return fmt.Errorf("load wishlist: %w", err)
	}

	s.set = set
	s.loaded = true
	return nil
}

// Get returns a snapshot of the current set.
func (s *Store) Get() (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.set.Clone(), nil
}

// Contains reports whether productID is wishlisted.
func (s *Store) Contains(productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return false, err
	}
	return s.set[productID], nil
}

// Toggle flips productID's membership and returns the new membership.
func (s *Store) Toggle(productID string) (bool, error) {
	if strings.TrimSpace(productID) == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	if err := s.load(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	next := s.set.Clone()
	added := !next[productID]
	if added {
		next[productID] = true
	} else {
		delete(next, productID)
	}
	if err := s.commit(next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Change{ProductID: productID, Added: added})
	return added, nil
}

// Remove deletes productID. It reports whether the id was present; removing
// an absent id still rewrites the persisted set.
func (s *Store) Remove(productID string) (bool, error) {
	if strings.TrimSpace(productID) == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	s.mu.Lock()
	if err := s.load(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	next := s.set.Clone()
	present := next[productID]
	delete(next, productID)
	if err := s.commit(next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if present {
		notify(listeners, Change{ProductID: productID, Added: false})
	}
	return present, nil
}

// Subscribe registers fn and returns a function that unregisters it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	entry := &listenerEntry{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, entry)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.listeners {
				if e == entry {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// commit must be called with s.mu held. The in-memory set only changes once
// the write succeeded.
func (s *Store) commit(next Set) error {
	if err := s.persister.Save(next); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	s.set = next
	return nil
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	for i, e := range s.listeners {
		out[i] = e.fn
	}
	return out
}

func notify(listeners []Listener, c Change) {
	for _, fn := range listeners {
		fn(c)
	}
}
