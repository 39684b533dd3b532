package handler

import (
	"net/http"
	"strconv"
)

// List endpoints page with limit/offset query parameters.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset from the query string. Missing or
// unparseable values fall back to the defaults; oversized limits are
// clamped to MaxLimit rather than rejected.
func ParsePagination(r *http.Request) PaginationParams {
	q := r.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return PaginationParams{Limit: limit, Offset: offset}
}
