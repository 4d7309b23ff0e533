// Package listquery turns an already-fetched collection into a displayed page:
// case-insensitive substring search, equality filters, a stable sort and a
// page slice. All stages are pure and synchronous.
package listquery

import (
	"sort"
	"strings"
)

// Fields is the string projection of one record, keyed by sortable/searchable
// field name. Nested values (e.g. an item's type name) are flattened by the
// caller's projector.
type Fields map[string]string

type Params struct {
	Search   string
	Filters  map[string]string
	SortBy   string
	SortDir  string // "asc" or "desc", anything else is treated as asc
	Page     int
	PageSize int
}

// Result carries one page plus the size of the filtered set.
type Result[T any] struct {
	Items []T
	Total int64
}

// Apply runs search, filters, sort and pagination in that order.
func Apply[T any](items []T, p Params, project func(T) Fields) Result[T] {
	filtered := Filter(items, p.Search, p.Filters, project)
	Sort(filtered, p.SortBy, p.SortDir, project)
	total := int64(len(filtered))
	return Result[T]{
		Items: Paginate(filtered, p.Page, p.PageSize),
		Total: total,
	}
}

// Filter keeps records whose projection matches the search text in any field
// and equals every filter value in its named field. An empty search and empty
// filters keep everything.
func Filter[T any](items []T, search string, filters map[string]string, project func(T) Fields) []T {
	search = strings.TrimSpace(strings.ToLower(search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		fields := project(item)
		if search != "" && !matchesSearch(fields, search) {
			continue
		}
		if !matchesFilters(fields, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(fields Fields, search string) bool {
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func matchesFilters(fields Fields, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" {
			continue
		}
		if !strings.EqualFold(fields[field], want) {
			return false
		}
	}
	return true
}

// Sort orders items in place by the projected field. The sort is stable so
// ties keep their original relative order.
func Sort[T any](items []T, sortBy, sortDir string, project func(T) Fields) {
	if sortBy == "" {
		return
	}
	desc := strings.EqualFold(sortDir, "desc")

	sort.SliceStable(items, func(i, j int) bool {
		a := strings.ToLower(project(items[i])[sortBy])
		b := strings.ToLower(project(items[j])[sortBy])
		if desc {
			return a > b
		}
		return a < b
	})
}

// Paginate slices one page out of items. Page numbers start at 1; out-of-range
// pages yield an empty slice, never an error.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
