package wishlist

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// CookieName is the cookie that carries the wishlist.
const CookieName = "wishlisted"

// CookieTTL is how long a written wishlist cookie lives.
const CookieTTL = 7 * 24 * time.Hour

// Persister loads and saves the whole wishlist.
//
// Load returns ErrMissing when nothing is stored and ErrCorrupt when the
// stored value cannot be decoded. Save always overwrites the full set.
type Persister interface {
	Load() (Set, error)
	Save(Set) error
}

// CookiePersister reads the wishlist from a request's Cookie header and
// writes it back as a Set-Cookie header on the response.
type CookiePersister struct {
	r      *http.Request
	w      http.ResponseWriter
	now    func() time.Time
	secure bool
}

// NewCookiePersister binds a persister to one request/response pair.
func NewCookiePersister(w http.ResponseWriter, r *http.Request, secure bool) *CookiePersister {
	return &CookiePersister{r: r, w: w, now: time.Now, secure: secure}
}

func (p *CookiePersister) Load() (Set, error) {
	c, err := p.r.Cookie(CookieName)
	if err != nil {
		return nil, ErrMissing
	}
	return Decode(c.Value)
}

// Save replaces any wishlist cookie already queued on the response.
func (p *CookiePersister) Save(s Set) error {
	h := p.w.Header()
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, CookieName+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}

	http.SetCookie(p.w, NewCookie(s, p.now(), p.secure))
	return nil
}

// NewCookie builds the wishlist cookie for s.
func NewCookie(s Set, now time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    Encode(s),
		Path:     "/",
		Expires:  now.Add(CookieTTL).UTC(),
		MaxAge:   int(CookieTTL / time.Second),
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// MemoryPersister keeps the encoded wishlist in memory. The zero value holds
// no wishlist.
type MemoryPersister struct {
	mu     sync.Mutex
	raw    string
	stored bool
	saves  int
}

// NewMemoryPersister returns a persister preloaded with raw, the cookie-form
// value.
func NewMemoryPersister(raw string) *MemoryPersister {
	return &MemoryPersister{raw: raw, stored: true}
}

func (p *MemoryPersister) Load() (Set, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stored {
		return nil, ErrMissing
	}
	return Decode(p.raw)
}

func (p *MemoryPersister) Save(s Set) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw = Encode(s)
	p.stored = true
	p.saves++
	return nil
}

// Raw returns the stored value.
func (p *MemoryPersister) Raw() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.raw
}

// Saves returns how many times Save was called.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
