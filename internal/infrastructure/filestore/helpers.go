package filestore

import (
	"strings"

	"github.com/sangkips/billmaster-api/pkg/pagination"
)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matchesAny(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if contains(f, needle) {
			return true
		}
	}
	return false
}

// page cuts one page out of items and reports the total before paging
func page[T any](items []T, params *pagination.PaginationParams) ([]T, int64) {
	params.Validate()
	start, end := params.Window(len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, int64(len(items))
}
