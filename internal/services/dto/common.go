package dto

import (
	"fmt"
	"strings"
)

// ListQuery carries the shared pagination/sorting query parameters.
type ListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// Normalized clamps the query to sane bounds and builds the ORDER BY
// clause. SortBy must be in the caller's whitelist or the default is
// used; sort columns are never taken from user input verbatim.
func (q ListQuery) Normalized(defaultSort string, allowed ...string) (page, limit int, orderBy string) {
	page = q.Page
	if page < 1 {
		page = 1
	}

	limit = q.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	sortBy := defaultSort
	for _, col := range allowed {
		if q.SortBy == col {
			sortBy = col
			break
		}
	}

	sortOrder := "asc"
	if strings.EqualFold(q.SortOrder, "desc") {
		sortOrder = "desc"
	}

	return page, limit, sortBy + " " + sortOrder
}

// CacheSuffix folds every query parameter into the cache key so two
// different queries never share an entry.
func (q ListQuery) CacheSuffix() string {
	return fmt.Sprintf("p%d:l%d:%s:%s", q.Page, q.Limit, q.SortBy, q.SortOrder)
}

// Page is a generic paginated response envelope.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
