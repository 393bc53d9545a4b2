package pager

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Descriptor validation errors.
var (
	ErrNegativeTotal      = errors.New("total must be non-negative")
	ErrInvalidPageSize    = errors.New("page size must be positive")
	ErrPageOutOfRange     = errors.New("current page out of range")
	ErrInconsistentFlags  = errors.New("has-next/has-previous flags inconsistent with current page")
	ErrInconsistentCounts = errors.New("page count inconsistent with total and page size")
)

// NoEntriesText is shown instead of a range summary when total is zero.
const NoEntriesText = "No entries found"

// printer formats entry counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Descriptor holds the facts needed to render page controls and range text
// for one page of a dataset. Build it with NewDescriptor so the derived
// fields are always consistent.
type Descriptor struct {
	Total           int  `json:"total"             yaml:"total"`
	PageCount       int  `json:"page_count"        yaml:"page_count"`
	CurrentPage     int  `json:"current_page"      yaml:"current_page"`
	PageSize        int  `json:"page_size"         yaml:"page_size"`
	HasNextPage     bool `json:"has_next_page"     yaml:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page" yaml:"has_previous_page"`
}

// NewDescriptor derives a Descriptor from the total item count, the page size
// and the 0-based current page. currentPage must lie in [0, pageCount-1], or be
// 0 when the dataset is empty.
func NewDescriptor(total, pageSize, currentPage int) (Descriptor, error) {
	if total < 0 {
		return Descriptor{}, fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}
	if pageSize <= 0 {
		return Descriptor{}, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	pageCount := PageCount(total, pageSize)
	if currentPage < 0 || (pageCount == 0 && currentPage != 0) || (pageCount > 0 && currentPage >= pageCount) {
		return Descriptor{}, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, currentPage, pageCount)
	}

	return Descriptor{
		Total:           total,
		PageCount:       pageCount,
		CurrentPage:     currentPage,
		PageSize:        pageSize,
		HasNextPage:     currentPage < pageCount-1,
		HasPreviousPage: currentPage > 0,
	}, nil
}

// Empty returns the descriptor of an empty dataset.
func Empty(pageSize int) Descriptor {
	if pageSize <= 0 {
		pageSize = 1
	}
	return Descriptor{PageSize: pageSize}
}

// PageCount returns ceil(total / pageSize), or 0 for an invalid page size.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Validate checks a descriptor that may have been assembled by hand.
func (d Descriptor) Validate() error {
	if d.Total < 0 {
		return ErrNegativeTotal
	}
	if d.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if d.PageCount != PageCount(d.Total, d.PageSize) {
		return fmt.Errorf("%w: want %d, got %d",
			ErrInconsistentCounts, PageCount(d.Total, d.PageSize), d.PageCount)
	}
	if d.CurrentPage < 0 || (d.PageCount > 0 && d.CurrentPage >= d.PageCount) ||
		(d.PageCount == 0 && d.CurrentPage != 0) {
		return ErrPageOutOfRange
	}
	if d.HasNextPage != (d.CurrentPage < d.PageCount-1) || d.HasPreviousPage != (d.CurrentPage > 0) {
		return ErrInconsistentFlags
	}
	return nil
}

// IsEmpty reports whether the dataset has no items.
func (d Descriptor) IsEmpty() bool {
	return d.Total == 0
}

// Page returns the 1-based current page number.
func (d Descriptor) Page() int {
	return d.CurrentPage + 1
}

// Offset returns the index of the first item on the current page.
func (d Descriptor) Offset() int {
	return d.CurrentPage * d.PageSize
}

// FirstItem returns the 1-based index of the first item on the page, or 0 when empty.
func (d Descriptor) FirstItem() int {
	if d.IsEmpty() {
		return 0
	}
	return d.Offset() + 1
}

// LastItem returns the 1-based index of the last item on the page, or 0 when empty.
func (d Descriptor) LastItem() int {
	if d.IsEmpty() {
		return 0
	}
	return min(d.Offset()+d.PageSize, d.Total)
}

// Summary returns the range text shown beside the page controls,
// e.g. "Showing 11 to 20 of 1,234 entries".
func (d Descriptor) Summary() string {
	if d.IsEmpty() {
		return NoEntriesText
	}
	return printer.Sprintf("Showing %d to %d of %d entries", d.FirstItem(), d.LastItem(), d.Total)
}
