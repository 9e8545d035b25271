package http

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/slug"
)

// productGIDPrefix turns a numeric product id into a global id.
const productGIDPrefix = "gid://shopify/Product/"

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// productIDParam reads {productId}. Global ids arrive path-escaped; a bare
// number is expanded to a product global id.
func productIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "productId")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", apperrors.InvalidInput("malformed product id")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.InvalidInput("product id is required")
	}
	if strings.IndexFunc(id, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		id = productGIDPrefix + id
	}
	return id, nil
}

// handleParam reads and validates {handle}.
func handleParam(r *http.Request) (string, error) {
	handle := chi.URLParam(r, "handle")
	if !slug.IsValid(handle) {
		return "", apperrors.InvalidInput("invalid product handle")
	}
	return handle, nil
}

// listParam collects a repeatable, comma-separated query parameter.
func listParam(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// selectedOptions turns the product page's query string into variant
// options, sorted by name.
func selectedOptions(r *http.Request) []domain.SelectedOption {
	q := r.URL.Query()
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make([]domain.SelectedOption, 0, len(names))
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			opts = append(opts, domain.SelectedOption{Name: name, Value: v})
		}
	}
	return opts
}
