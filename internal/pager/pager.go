package pager

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Controls reports which navigation controls are enabled for a descriptor.
type Controls struct {
	First    bool
	Previous bool
	Next     bool
	Last     bool
}

// Option configures a Pager.
type Option func(*Pager)

// WithPageSizeOptions sets the page sizes offered to the user.
func WithPageSizeOptions(sizes ...int) Option {
	return func(p *Pager) {
		p.pageSizeOptions = slices.Clone(sizes)
	}
}

// WithMaxVisiblePages sets the window width passed to Window.
func WithMaxVisiblePages(n int) Option {
	return func(p *Pager) {
		p.maxVisiblePages = n
	}
}

// WithLogger sets the logger used for rejected requests.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pager) {
		p.logger = l
	}
}

// OnPageChange registers the callback receiving 0-based page targets.
func OnPageChange(fn func(page int)) Option {
	return func(p *Pager) {
		p.onPageChange = fn
	}
}

// OnItemsPerPageChange registers the callback receiving new page sizes.
// The receiver must move back to the first page afterwards.
func OnItemsPerPageChange(fn func(size int)) Option {
	return func(p *Pager) {
		p.onItemsPerPageChange = fn
	}
}

// Pager turns navigation gestures into page and page-size callbacks. It
// never moves itself: the data owner pushes a fresh Descriptor after acting
// on a callback. Out-of-range requests are rejected, never clamped.
type Pager struct {
	desc                 Descriptor
	pageSizeOptions      []int
	maxVisiblePages      int
	jumpInput            string
	onPageChange         func(page int)
	onItemsPerPageChange func(size int)
	logger               zerolog.Logger
}

// New creates a Pager for desc.
func New(desc Descriptor, opts ...Option) *Pager {
	p := &Pager{
		desc:            desc,
		maxVisiblePages: DefaultMaxVisiblePages,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Descriptor returns the descriptor last pushed by the data owner.
func (p *Pager) Descriptor() Descriptor {
	return p.desc
}

// SetDescriptor replaces the current descriptor.
func (p *Pager) SetDescriptor(desc Descriptor) {
	p.desc = desc
}

// PageSizeOptions returns the page sizes offered to the user.
func (p *Pager) PageSizeOptions() []int {
	return slices.Clone(p.pageSizeOptions)
}

// Tokens returns the page control strip for the current descriptor.
func (p *Pager) Tokens() []Token {
	return Window(p.desc.Page(), p.desc.PageCount, p.maxVisiblePages)
}

// Controls returns the enabled state of first/previous/next/last.
func (p *Pager) Controls() Controls {
	return Controls{
		First:    p.desc.HasPreviousPage,
		Previous: p.desc.HasPreviousPage,
		Next:     p.desc.HasNextPage,
		Last:     p.desc.HasNextPage,
	}
}

// CanGoTo reports whether the 0-based page is a valid navigation target.
func (p *Pager) CanGoTo(page int) bool {
	return page >= 0 && page < p.desc.PageCount && page != p.desc.CurrentPage
}

// GoTo dispatches OnPageChange for a valid 0-based target and reports
// whether it did.
func (p *Pager) GoTo(page int) bool {
	if !p.CanGoTo(page) {
		p.logger.Debug().
			Int("target", page).
			Int("page_count", p.desc.PageCount).
			Msg("page change rejected")
		return false
	}
	if p.onPageChange != nil {
		p.onPageChange(page)
	}
	return true
}

// First moves to the first page.
func (p *Pager) First() bool {
	if !p.desc.HasPreviousPage {
		return false
	}
	return p.GoTo(0)
}

// Previous moves one page back.
func (p *Pager) Previous() bool {
	if !p.desc.HasPreviousPage {
		return false
	}
	return p.GoTo(p.desc.CurrentPage - 1)
}

// Next moves one page forward.
func (p *Pager) Next() bool {
	if !p.desc.HasNextPage {
		return false
	}
	return p.GoTo(p.desc.CurrentPage + 1)
}

// Last moves to the last page.
func (p *Pager) Last() bool {
	if !p.desc.HasNextPage {
		return false
	}
	return p.GoTo(p.desc.PageCount - 1)
}

// SetJumpInput stores the raw text of the go-to-page field.
func (p *Pager) SetJumpInput(s string) {
	p.jumpInput = s
}

// JumpInput returns the raw text of the go-to-page field.
func (p *Pager) JumpInput() string {
	return p.jumpInput
}

// JumpTarget parses the go-to-page field as a 1-based page and returns the
// 0-based target. ok is false for non-numeric or out-of-range input, which
// is how the submit control gets disabled.
//
//nolint:nonamedreturns // Named returns document the 0-based target.
func (p *Pager) JumpTarget() (page int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.jumpInput))
	if err != nil || n < 1 || n > p.desc.PageCount {
		return 0, false
	}
	return n - 1, true
}

// SubmitJump navigates to the go-to-page target. Invalid input is ignored
// and the buffer is kept so the user can correct it.
func (p *Pager) SubmitJump() bool {
	page, ok := p.JumpTarget()
	if !ok {
		return false
	}
	p.jumpInput = ""
	if page == p.desc.CurrentPage {
		return false
	}
	return p.GoTo(page)
}

// IsAllowedPageSize reports whether size may be selected.
func (p *Pager) IsAllowedPageSize(size int) bool {
	if size <= 0 {
		return false
	}
	if len(p.pageSizeOptions) == 0 {
		return true
	}
	return slices.Contains(p.pageSizeOptions, size)
}

// SetPageSize dispatches OnItemsPerPageChange for an allowed size that
// differs from the current one.
func (p *Pager) SetPageSize(size int) bool {
	if !p.IsAllowedPageSize(size) || size == p.desc.PageSize {
		p.logger.Debug().Int("size", size).Msg("page size change rejected")
		return false
	}
	if p.onItemsPerPageChange != nil {
		p.onItemsPerPageChange(size)
	}
	return true
}

// StepPageSize moves to the next (delta > 0) or previous (delta < 0) option.
func (p *Pager) StepPageSize(delta int) bool {
	if len(p.pageSizeOptions) == 0 || delta == 0 {
		return false
	}
	idx := slices.Index(p.pageSizeOptions, p.desc.PageSize)
	if idx < 0 {
		// Current size is not an option: snap to the closest one in the
		// requested direction.
		idx, _ = slices.BinarySearch(p.pageSizeOptions, p.desc.PageSize)
		if delta > 0 {
			idx--
		}
	}
	next := idx + delta
	if next < 0 || next >= len(p.pageSizeOptions) {
		return false
	}
	return p.SetPageSize(p.pageSizeOptions[next])
}
