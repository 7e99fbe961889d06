// Package controllers contains the HTTP handlers. Controllers only decode
// requests, call a service and encode the result; no business rules live
// here.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vanij/pkg/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads ?page and ?limit with sane bounds applied.
func pageParams(r *http.Request) (page int, limit int, offset int64) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset = int64(page-1) * int64(limit)
	return page, limit, offset
}

func pagination(page, limit int, total int64) response.Pagination {
	return response.Pagination{Page: page, Limit: limit, Total: total}
}
