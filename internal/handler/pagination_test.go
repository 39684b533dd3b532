package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults when absent", "", DefaultLimit, 0},
		{"explicit values", "?limit=10&offset=30", 10, 30},
		{"oversized limit is clamped", "?limit=500", MaxLimit, 0},
		{"zero limit falls back", "?limit=0", DefaultLimit, 0},
		{"negative offset falls back", "?offset=-5", DefaultLimit, 0},
		{"garbage falls back", "?limit=abc&offset=xyz", DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/products"+tt.query, nil)

			p := ParsePagination(r)

			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}
