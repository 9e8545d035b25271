// Package wishlist owns the visitor's set of favourite product ids and every
// entry point that mutates it.
package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrMissing is returned by a Persister that holds no wishlist yet.
	ErrMissing = errors.New("wishlist: no persisted value")
	// ErrCorrupt is returned by a Persister whose value cannot be decoded.
	ErrCorrupt = errors.New("wishlist: corrupt persisted value")
)

// Set maps product ids to true. Absent keys are not wishlisted.
type Set map[string]bool

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = true
	}
	return c
}

// Encode renders s as URL-encoded JSON, the form stored in the cookie.
func Encode(s Set) string {
	if s == nil {
		s = Set{}
	}
	b, _ := json.Marshal(s)
	return strings.ReplaceAll(url.QueryEscape(string(b)), "+", "%20")
}

// Decode parses a stored value, URL-encoded or raw JSON. Raw JSON only
// reaches it through MemoryPersister: the HTTP cookie parser discards a
// value containing '"', so CookiePersister reports it as ErrMissing.
// Entries whose value is not the boolean true are dropped.
func Decode(raw string) (Set, error) {
	text, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var entries map[string]any
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrCorrupt)
	}

	s := make(Set, len(entries))
	for id, v := range entries {
		if on, ok := v.(bool); ok && on && id != "" {
			s[id] = true
		}
	}
	return s, nil
}
