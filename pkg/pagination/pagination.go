package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// DefaultPageBy is the number of products shown per catalog page.
const DefaultPageBy = 8

// MaxPageBy is the largest page the Storefront API accepts.
const MaxPageBy = 250

// Direction selects which way a cursor is followed.
type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

// Params are the GraphQL connection arguments for one page. Exactly one of
// First or Last is non-zero.
type Params struct {
	First  int    `json:"first,omitempty"`
	Last   int    `json:"last,omitempty"`
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// Forward returns params for the first page of size n.
func Forward(n int) Params {
	return Params{First: clamp(n)}
}

// FromRequest reads "cursor", "direction" and "page_by" query parameters.
// direction=previous pages backwards from cursor; anything else pages forwards.
func FromRequest(r *http.Request, pageBy int) Params {
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page_by")); err == nil && v > 0 {
		pageBy = v
	}
	pageBy = clamp(pageBy)

	cursor := strings.TrimSpace(q.Get("cursor"))
	if Direction(strings.ToLower(q.Get("direction"))) == Previous {
		return Params{Last: pageBy, Before: cursor}
	}
	return Params{First: pageBy, After: cursor}
}

// Variables renders p as GraphQL variables, omitting unset arguments.
func (p Params) Variables() map[string]any {
	vars := make(map[string]any, 2)
	if p.First > 0 {
		vars["first"] = p.First
	}
	if p.Last > 0 {
		vars["last"] = p.Last
	}
	if p.After != "" {
		vars["after"] = p.After
	}
	if p.Before != "" {
		vars["before"] = p.Before
	}
	return vars
}

func clamp(n int) int {
	switch {
	case n <= 0:
		return DefaultPageBy
	case n > MaxPageBy:
		return MaxPageBy
	default:
		return n
	}
}
