package grid

import (
	"slices"
	"time"

	"github.com/paydesk/paydesk/internal/pager"
)

// Defaults applied by DefaultConfig.
const (
	DefaultPageSize       = 10
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultEmptyMessage   = "No results"
)

// Config is the enabled-feature set of one table instance. Each Enable flag
// gates its feature independently of the others.
type Config struct {
	EnableSorting          bool
	EnableFiltering        bool
	EnableRowSelection     bool
	EnablePagination       bool
	EnableColumnVisibility bool
	StickyHeader           bool

	// PageSize is the initial page size requested from the data owner.
	PageSize int
	// PageSizeOptions are the ascending page sizes offered to the user.
	PageSizeOptions []int
	// MaxVisiblePages is the width of the page window; 0 means pager.DefaultMaxVisiblePages.
	MaxVisiblePages int
	// SearchDebounce is the quiet period before a search is applied.
	SearchDebounce time.Duration

	// PersistSelection keeps selected identifiers across pages instead of
	// clearing the selection whenever the row set changes.
	PersistSelection bool

	EmptyMessage     string
	EmptyDescription string
}

// DefaultConfig returns a configuration with every feature enabled.
func DefaultConfig() Config {
	return Config{
		EnableSorting:          true,
		EnableFiltering:        true,
		EnableRowSelection:     true,
		EnablePagination:       true,
		EnableColumnVisibility: true,
		StickyHeader:           true,
		PageSize:               DefaultPageSize,
		PageSizeOptions:        []int{10, 20, 30, 40, 50},
		MaxVisiblePages:        pager.DefaultMaxVisiblePages,
		SearchDebounce:         DefaultSearchDebounce,
		EmptyMessage:           DefaultEmptyMessage,
	}
}

// Validate checks the configuration on its own, without columns or actions.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return configErrorf("PageSize", "must be positive, got %d", c.PageSize)
	}
	for i, size := range c.PageSizeOptions {
		if size <= 0 {
			return configErrorf("PageSizeOptions", "option %d must be positive, got %d", i, size)
		}
		if i > 0 && size <= c.PageSizeOptions[i-1] {
			return configErrorf("PageSizeOptions", "must be strictly ascending, got %v", c.PageSizeOptions)
		}
	}
	if len(c.PageSizeOptions) > 0 && !slices.Contains(c.PageSizeOptions, c.PageSize) {
		return configErrorf("PageSize", "%d is not one of %v", c.PageSize, c.PageSizeOptions)
	}
	if c.MaxVisiblePages < 0 {
		return configErrorf("MaxVisiblePages", "must not be negative, got %d", c.MaxVisiblePages)
	}
	if c.SearchDebounce < 0 {
		return configErrorf("SearchDebounce", "must not be negative, got %s", c.SearchDebounce)
	}
	return nil
}

