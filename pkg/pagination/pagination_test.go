package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	p := FromRequest(httptest.NewRequest("GET", "/collections/all", nil), DefaultPageBy)
	assert.Equal(t, Params{First: 8}, p)
}

func TestFromRequest_NextCursor(t *testing.T) {
	p := FromRequest(httptest.NewRequest("GET", "/collections/all?cursor=abc&direction=next", nil), DefaultPageBy)
	assert.Equal(t, Params{First: 8, After: "abc"}, p)
}

func TestFromRequest_PreviousCursor(t *testing.T) {
	p := FromRequest(httptest.NewRequest("GET", "/collections/all?cursor=xyz&direction=PREVIOUS", nil), DefaultPageBy)
	assert.Equal(t, Params{Last: 8, Before: "xyz"}, p)
}

func TestFromRequest_PageBy(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"page_by=12", 12},
		{"page_by=0", 8},
		{"page_by=-3", 8},
		{"page_by=abc", 8},
		{"page_by=1000", MaxPageBy},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest("GET", "/?"+tt.query, nil), DefaultPageBy)
			assert.Equal(t, tt.want, p.First)
		})
	}
}

func TestForward(t *testing.T) {
	assert.Equal(t, Params{First: 250}, Forward(250))
	assert.Equal(t, Params{First: 8}, Forward(0))
}

func TestVariables(t *testing.T) {
	assert.Equal(t, map[string]any{"first": 8}, Params{First: 8}.Variables())
	assert.Equal(t, map[string]any{"last": 8, "before": "c"}, Params{Last: 8, Before: "c"}.Variables())
	assert.Equal(t, map[string]any{"first": 8, "after": "c"}, Params{First: 8, After: "c"}.Variables())
}
