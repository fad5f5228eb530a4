package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedDefaults(t *testing.T) {
	page, limit, orderBy := ListQuery{}.Normalized("display_order", "display_order", "title")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, "display_order asc", orderBy)
}

func TestNormalizedClampsBounds(t *testing.T) {
	page, limit, _ := ListQuery{Page: -3, Limit: 5000}.Normalized("id", "id")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestNormalizedRejectsUnknownSortColumn(t *testing.T) {
	_, _, orderBy := ListQuery{SortBy: "password_hash; DROP TABLE users"}.Normalized("title", "title", "created_at")
	assert.Equal(t, "title asc", orderBy)
}

func TestNormalizedSortOrder(t *testing.T) {
	_, _, orderBy := ListQuery{SortBy: "created_at", SortOrder: "DESC"}.Normalized("title", "title", "created_at")
	assert.Equal(t, "created_at desc", orderBy)

	_, _, orderBy = ListQuery{SortOrder: "sideways"}.Normalized("title", "title")
	assert.Equal(t, "title asc", orderBy)
}

func TestCacheSuffixDistinguishesQueries(t *testing.T) {
	a := ListQuery{Page: 1, Limit: 10}.CacheSuffix()
	b := ListQuery{Page: 2, Limit: 10}.CacheSuffix()
	c := ListQuery{Page: 1, Limit: 10, SortBy: "title"}.CacheSuffix()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
