package pager

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders accepted by ParseSort.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Params validation errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'amount:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidParams     = errors.New("invalid page parameters")
)

// Params selects one page of a dataset.
type Params struct {
	// Page is the 1-based page number.
	Page int
	// PageSize is the number of items per page.
	PageSize int
}

// Validate checks that both fields are in range.
func (p Params) Validate() error {
	switch {
	case p.Page < 1:
		return fmt.Errorf("%w: page must be 1 or greater, got %d", ErrInvalidParams, p.Page)
	case p.PageSize <= 0:
		return fmt.Errorf("%w: page-size must be positive, got %d", ErrInvalidParams, p.PageSize)
	}
	return nil
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Slice returns the items on the page selected by p and the 0-based page that
// was actually served. A page past the end is capped to the last page so a
// shrinking dataset never yields an empty page while data exists. p must be
// valid.
func Slice[T any](p Params, items []T) ([]T, int) {
	if len(items) == 0 {
		return []T{}, 0
	}

	offset := p.Offset()
	if offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	end := min(offset+p.PageSize, len(items))
	return items[offset:end], offset / p.PageSize
}

// ParseSort parses "field" or "field:order". An empty string yields an empty
// field, which callers treat as unsorted.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
